package handlers

import (
	"testing"

	"github.com/SAP-F-2025/collaboration-service/internal/realtime"
)

func TestRoomFromFrame(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		id     string
		want   realtime.RoomKey
		wantOK bool
	}{
		{"cohort room", "cohort", "c1", realtime.CohortRoom("c1"), true},
		{"team room", "team", "t1", realtime.TeamRoom("t1"), true},
		{"personal room rejected", "user", "u1", "", false},
		{"unknown kind", "channel", "x1", "", false},
		{"missing id", "cohort", "", "", false},
		{"empty frame", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frame clientFrame
			frame.Room.Kind = tt.kind
			frame.Room.ID = tt.id

			room, ok := roomFromFrame(frame)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if room != tt.want {
				t.Errorf("room = %q, want %q", room, tt.want)
			}
		})
	}
}
