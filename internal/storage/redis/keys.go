package redis

import (
	"fmt"

	"github.com/nkessler/guessgame-go/internal/model"
)

// Key prefix for all application data
const keyPrefix = "guessgame"

// userKey returns the Redis key for a User record
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// userIDSeqKey returns the Redis key for the user id sequence counter
func userIDSeqKey() string {
	return fmt.Sprintf("%s:seq:user_id", keyPrefix)
}

// usersSetKey returns the Redis key for the SET of all user ids
func usersSetKey() string {
	return fmt.Sprintf("%s:users", keyPrefix)
}

// sessionKey returns the Redis key for a Session record
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}
