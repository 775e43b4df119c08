package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/bitwire/bitbuf"
)

func newBitsCmd() *cobra.Command {
	bitsCmd := &cobra.Command{
		Use:   "bits",
		Short: "Pack and unpack bit fields",
		Long: `Fields are packed least significant bit first: bit 0 is the low bit of
byte 0 and each field continues where the previous one ended.`,
	}

	var readWidths []int
	readCmd := &cobra.Command{
		Use:   "read HEX",
		Short: "Read consecutive fields out of a hex buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(args[0])
			if err != nil {
				return err
			}
			r := bitbuf.NewReader(b)
			for _, w := range readWidths {
				at := r.NumBitsRead()
				v, err := r.ReadField(w)
				if err != nil {
					return fmt.Errorf("field at bit %d width %d: %w", at, w, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%d\t%#x\n", at, w, v, v)
			}
			return nil
		},
	}
	readCmd.Flags().IntSliceVarP(&readWidths, "widths", "w", nil, "field widths in bits, 0..64")
	_ = readCmd.MarkFlagRequired("widths")

	var writeWidths []int
	writeCmd := &cobra.Command{
		Use:   "write VALUE...",
		Short: "Pack values into a hex buffer, one width per value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != len(writeWidths) {
				return fmt.Errorf("%d values for %d widths", len(args), len(writeWidths))
			}
			total := 0
			for _, w := range writeWidths {
				if w < 0 || w > 64 {
					return fmt.Errorf("width %d out of range", w)
				}
				total += w
			}
			bw := bitbuf.NewWriter(make([]byte, (total+7)>>3))
			for i, a := range args {
				v, err := strconv.ParseUint(a, 0, 64)
				if err != nil {
					return err
				}
				if err := bw.WriteField(v, writeWidths[i]); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(bw.Bytes()))
			return err
		},
	}
	writeCmd.Flags().IntSliceVarP(&writeWidths, "widths", "w", nil, "field widths in bits, 0..64")
	_ = writeCmd.MarkFlagRequired("widths")

	bitsCmd.AddCommand(readCmd, writeCmd)
	return bitsCmd
}
