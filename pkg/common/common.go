package common

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	node, err := snowflake.NewNode(int64(os.Getpid() % 1023))
	if err != nil {
		node, _ = snowflake.NewNode(1)
	}
	snowflakeNode = node
}

// UUIDint64 returns a time-ordered unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a snowflake identifier.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// Sha256Hash returns the hex sha256 digest of src.
func Sha256Hash(src string) string {
	h := sha256.New()
	h.Write([]byte(src))
	return fmt.Sprintf("%x", h.Sum(nil))
}
