package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txray/txray/binaryenc"
	"github.com/txray/txray/decode"
)

type decodeCommand struct {
	File string
	All  bool
}

func newDecodeCommand() *cobra.Command {
	cc := &decodeCommand{}
	cmd := &cobra.Command{
		Use:   "decode [input]",
		Short: "Decode a string or file and print the matching annotation tree",
		Long: `Decode attempts every known encoding of the given input (hex,
bech32, base58check, base64, or raw bytes) against every registered
decoder, printing the annotation tree of the first successful match, or
of every successful match with --all. With no
positional argument, --file content is read and tried as both raw bytes
and, if valid UTF-8, as a string.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.execute(args)
		},
	}
	cmd.Flags().StringVar(&cc.File, "file", "", "path to a file of raw "+
		"bytes to decode; use '-' for stdin")
	cmd.Flags().BoolVar(&cc.All, "all", false, "print every matching "+
		"candidate instead of only the first")

	return cmd
}

func (c *decodeCommand) execute(args []string) error {
	var input binaryenc.Input
	switch {
	case len(args) == 1:
		input = binaryenc.InputString{S: args[0]}

	case c.File != "":
		data, err := readFileOrStdin(c.File)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		input = binaryenc.InputBinary{B: data}

	default:
		return fmt.Errorf("either a positional argument or --file must be given")
	}

	candidates := decode.DecodeInput(input)
	if len(candidates) == 0 {
		return fmt.Errorf("no decoder recognized this input")
	}

	if !c.All {
		candidates = candidates[:1]
	}
	for i, cand := range candidates {
		if i > 0 {
			fmt.Println(strings.Repeat("-", 40))
		}
		fmt.Printf("%s (%s/%s)\n", cand.Decoder.Title, cand.Decoder.Group, cand.Decoder.Symbol)
		renderTree(os.Stdout, cand.Tree)
	}
	return nil
}

func readFileOrStdin(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
