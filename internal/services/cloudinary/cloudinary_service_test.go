package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/rajivgeraev/bookswap-api/internal/config"
)

func TestGenerateSignature(t *testing.T) {
	cfg := &config.Config{
		JWTSecret: "test-secret",
		CloudinaryConfig: config.CloudinaryConfig{
			APISecret: "cloud-secret",
		},
	}
	service := NewCloudinaryService(cfg)

	params := map[string]string{
		"timestamp":     "1700000000",
		"upload_preset": "bookswap_covers",
	}

	// Подпись — SHA-1 от параметров, отсортированных по ключу,
	// с секретом в конце
	h := sha1.New()
	h.Write([]byte("timestamp=1700000000&upload_preset=bookswap_covers" + "cloud-secret"))
	want := hex.EncodeToString(h.Sum(nil))

	if got := service.GenerateSignature(params); got != want {
		t.Errorf("GenerateSignature = %q, ожидалось %q", got, want)
	}
}

func TestGenerateSignatureDeterministic(t *testing.T) {
	cfg := &config.Config{
		JWTSecret: "test-secret",
		CloudinaryConfig: config.CloudinaryConfig{
			APISecret: "cloud-secret",
		},
	}
	service := NewCloudinaryService(cfg)

	params := map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	}

	first := service.GenerateSignature(params)
	for i := 0; i < 10; i++ {
		if got := service.GenerateSignature(params); got != first {
			t.Fatal("подпись должна быть детерминированной независимо от порядка обхода map")
		}
	}
}
