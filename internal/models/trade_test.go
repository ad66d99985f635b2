package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanTransitionTrade(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to accepted", TradeStatusPending, TradeStatusAccepted, true},
		{"pending to rejected", TradeStatusPending, TradeStatusRejected, true},
		{"pending to completed", TradeStatusPending, TradeStatusCompleted, false},
		{"pending to pending", TradeStatusPending, TradeStatusPending, false},
		{"accepted to rejected", TradeStatusAccepted, TradeStatusRejected, false},
		{"accepted to accepted", TradeStatusAccepted, TradeStatusAccepted, false},
		{"rejected to accepted", TradeStatusRejected, TradeStatusAccepted, false},
		{"completed to accepted", TradeStatusCompleted, TradeStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionTrade(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionTrade(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminalTradeStatus(t *testing.T) {
	if !IsTerminalTradeStatus(TradeStatusAccepted) {
		t.Error("accepted должен быть конечным статусом")
	}
	if !IsTerminalTradeStatus(TradeStatusRejected) {
		t.Error("rejected должен быть конечным статусом")
	}
	if IsTerminalTradeStatus(TradeStatusPending) {
		t.Error("pending не должен быть конечным статусом")
	}
	if IsTerminalTradeStatus(TradeStatusCompleted) {
		t.Error("completed не должен быть конечным статусом")
	}
}

func TestIsValidTradeStatus(t *testing.T) {
	for _, status := range []string{TradeStatusPending, TradeStatusAccepted, TradeStatusRejected, TradeStatusCompleted} {
		if !IsValidTradeStatus(status) {
			t.Errorf("статус %q должен быть допустимым", status)
		}
	}
	for _, status := range []string{"", "canceled", "PENDING", "done"} {
		if IsValidTradeStatus(status) {
			t.Errorf("статус %q не должен быть допустимым", status)
		}
	}
}

func TestMatchesTradeRole(t *testing.T) {
	requester := uuid.New()
	owner := uuid.New()
	outsider := uuid.New()

	trade := &TradeRequest{RequesterID: requester, OwnerID: owner}

	tests := []struct {
		name string
		user uuid.UUID
		role string
		want bool
	}{
		{"incoming for owner", owner, TradeRoleIncoming, true},
		{"incoming for requester", requester, TradeRoleIncoming, false},
		{"outgoing for requester", requester, TradeRoleOutgoing, true},
		{"outgoing for owner", owner, TradeRoleOutgoing, false},
		{"all for owner", owner, TradeRoleAll, true},
		{"all for requester", requester, TradeRoleAll, true},
		{"all for outsider", outsider, TradeRoleAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trade.MatchesTradeRole(tt.user, tt.role); got != tt.want {
				t.Errorf("MatchesTradeRole(%s, %q) = %v, want %v", tt.user, tt.role, got, tt.want)
			}
		})
	}
}

func TestIsDirectRequest(t *testing.T) {
	trade := &TradeRequest{}
	if !trade.IsDirectRequest() {
		t.Error("заявка без предлагаемой книги должна быть прямым запросом")
	}

	offered := uuid.New()
	trade.BookOfferedID = &offered
	if trade.IsDirectRequest() {
		t.Error("заявка с предлагаемой книгой не должна быть прямым запросом")
	}
}

func TestIsValidCondition(t *testing.T) {
	for _, condition := range []string{"New", "Like New", "Very Good", "Good", "Fair", "Poor"} {
		if !IsValidCondition(condition) {
			t.Errorf("состояние %q должно быть допустимым", condition)
		}
	}
	if IsValidCondition("Destroyed") {
		t.Error("состояние Destroyed не должно быть допустимым")
	}
}
