package worker

import (
	"os"
	"testing"

	"github.com/spr311/pinboard/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
