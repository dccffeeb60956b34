package common

import (
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	nodeID := cast.ToInt64(os.Getenv("SNOWFLAKE_NODE_ID"))
	if nodeID <= 0 || nodeID > 1023 {
		rand.Seed(time.Now().UnixNano())
		nodeID = rand.Int63n(1023) + 1
	}
	var err error
	snowflakeNode, err = snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}
