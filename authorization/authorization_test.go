package authorization

import "testing"

func TestUserCouldModifyGame(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		creatorID   string
		isChatAdmin bool
		want        bool
	}{
		{"Creator", "42", "42", false, true},
		{"Chat admin", "10", "42", true, true},
		{"Anybody else", "10", "42", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserCouldModifyGame(tt.userID, tt.creatorID, tt.isChatAdmin); got != tt.want {
				t.Errorf("UserCouldModifyGame() = %v, want %v", got, tt.want)
			}
		})
	}
}
