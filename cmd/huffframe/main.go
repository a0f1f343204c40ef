// Command huffframe compresses and decompresses files with the huffframe
// frame format.
//
// Usage:
//
//     huffframe [-mode text|bytes] [-v] encode <in> <out>
//     huffframe [-mode text|bytes] [-v] decode <in> <out>
//
package main

import (
	"flag"
	"fmt"
	"os"

	logging "github.com/op/go-logging"

	huffman "github.com/chronos-tachyon/huffframe"
)

var log = logging.MustGetLogger("huffframe/cmd")

var (
	flagMode    = flag.String("mode", "text", "symbol kind: \"text\" (UTF-8 characters) or \"bytes\"")
	flagVerbose = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] encode|decode <in> <out>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	setupLogging(*flagVerbose)

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}
	op, inPath, outPath := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	if err := run(op, *flagMode, inPath, outPath); err != nil {
		log.Errorf("%s %s: %v", op, inPath, err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{module} %{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}

func run(op, mode, inPath, outPath string) error {
	in, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	out, err := transform(op, mode, in)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, out, 0o666); err != nil {
		return err
	}
	log.Infof("%s: read %d bytes from %q, wrote %d bytes to %q", op, len(in), inPath, len(out), outPath)
	return nil
}

func transform(op, mode string, in []byte) ([]byte, error) {
	switch {
	case op == "encode" && mode == "text":
		return huffman.CompressText(string(in))
	case op == "encode" && mode == "bytes":
		return huffman.CompressBytes(in)
	case op == "decode" && mode == "text":
		text, err := huffman.DecompressText(in)
		return []byte(text), err
	case op == "decode" && mode == "bytes":
		return huffman.DecompressBytes(in)
	case op != "encode" && op != "decode":
		return nil, fmt.Errorf("unknown operation %q", op)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
