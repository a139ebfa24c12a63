package bitset

import (
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kwertop/gocuckoo"
)

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	connOptions, err := gocuckoo.ParseRedisURI("redis://" + mr.Addr())
	if err != nil {
		panic(err)
	}
	gocuckoo.MakeRedisClient(*connOptions)
	code := m.Run()
	mr.Close()
	os.Exit(code)
}
