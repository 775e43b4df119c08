package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/bitwire/varint"
)

func newVarintCmd() *cobra.Command {
	varintCmd := &cobra.Command{
		Use:   "varint",
		Short: "Encode and decode LEB128 varints",
	}

	var encSigned bool
	encodeCmd := &cobra.Command{
		Use:   "encode [--signed] [--] VALUE...",
		Short: "Encode integers into a hex varint sequence",
		Long: `Encodes each value and prints the concatenated encodings in hex.
Negative values look like flags; put -- before them:

  bitwire varint encode --signed -- -1 1 -64`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []byte
			for _, a := range args {
				if encSigned {
					v, err := strconv.ParseInt(a, 0, 64)
					if err != nil {
						return err
					}
					out = varint.AppendVarint(out, v)
					continue
				}
				v, err := strconv.ParseUint(a, 0, 64)
				if err != nil {
					return err
				}
				out = varint.AppendUvarint(out, v)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return err
		},
	}
	encodeCmd.Flags().BoolVarP(&encSigned, "signed", "s", false, "zigzag-encode signed values")

	var decSigned bool
	decodeCmd := &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode a hex varint sequence, one value per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(args[0])
			if err != nil {
				return err
			}
			for off := 0; off < len(b); {
				v, n, err := varint.Uvarint(b[off:])
				if err != nil {
					return fmt.Errorf("offset %d: %w", off, err)
				}
				off += n
				if decSigned {
					fmt.Fprintln(cmd.OutOrStdout(), varint.ZigZagDecode64(v))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
			}
			return nil
		},
	}
	decodeCmd.Flags().BoolVarP(&decSigned, "signed", "s", false, "zigzag-decode signed values")

	varintCmd.AddCommand(encodeCmd, decodeCmd)
	return varintCmd
}
