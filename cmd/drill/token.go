package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drill/internal/token"
)

var flagScheme string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Convert action sequences and tokens",
	Long: `Encode a sequence of action digits into a token or decode a token
back. Digits are 0 (drill, steering down), 1 (pause or resume), 2 (drill,
steering up) and 3 (pull back).

Examples:
  drill token encode 1222220000
  drill token decode --scheme sol CqkKAA
  drill token decode BRYQ`,
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <digits>",
	Short: "Encode action digits",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenEncode,
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a token to action digits",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDecode,
}

func init() {
	tokenCmd.PersistentFlags().StringVar(&flagScheme, "scheme", string(token.SchemeRLE), "Token scheme: s4 or sol")
	tokenCmd.AddCommand(tokenEncodeCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
}

func runTokenEncode(_ *cobra.Command, args []string) error {
	symbols := make([]byte, 0, len(args[0]))
	for i, r := range args[0] {
		if r < '0' || r > '9' {
			return fmt.Errorf("not a digit at %d: %q", i, r)
		}
		symbols = append(symbols, byte(r-'0'))
	}

	tok, err := token.Encode(token.Scheme(flagScheme), symbols)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

func runTokenDecode(_ *cobra.Command, args []string) error {
	symbols, err := token.Decode(token.Scheme(flagScheme), args[0])
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, s := range symbols {
		b.WriteByte('0' + s)
	}
	fmt.Println(b.String())
	return nil
}
