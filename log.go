package huffman

import (
	logging "github.com/op/go-logging"
)

const logModule = "huffframe"

var log = logging.MustGetLogger(logModule)

func init() {
	// Applies to the default backend only.  A program that installs its own
	// backend with logging.SetBackend picks the level there.
	logging.SetLevel(logging.INFO, logModule)
}
