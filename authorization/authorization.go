package authorization

// UserCouldModifyGame returns if given user could advance or stop a game: its
// creator or an administrator of the chat it runs in.
func UserCouldModifyGame(userID string, creatorID string, isChatAdmin bool) bool {
	return isChatAdmin || creatorID == userID
}
