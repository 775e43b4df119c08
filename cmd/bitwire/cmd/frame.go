package cmd

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/bitwire"
	"github.com/unkn0wn-root/bitwire/codec"
	"github.com/unkn0wn-root/bitwire/internal/wire"
	zaplog "github.com/unkn0wn-root/bitwire/log/zap"
)

type frameOpts struct {
	codec    string
	compress bool
	batch    bool
	stream   bool
}

func newFramer(o frameOpts, l *zap.Logger) (*bitwire.Framer[any], error) {
	var cd codec.Codec[any]
	switch o.codec {
	case "json":
		cd = codec.JSON[any]{}
	case "cbor":
		c, err := codec.NewCBOR[any](true)
		if err != nil {
			return nil, err
		}
		cd = c
	case "msgpack":
		cd = codec.Msgpack[any]{}
	default:
		return nil, fmt.Errorf("unknown codec %q (json, cbor, msgpack)", o.codec)
	}
	return bitwire.New(bitwire.Options[any]{
		Codec:    cd,
		Compress: o.compress,
		Logger:   zaplog.New(l),
	})
}

// input returns the hex argument if given, raw stdin otherwise.
func input(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return hex.DecodeString(strings.TrimSpace(args[0]))
	}
	return io.ReadAll(cmd.InOrStdin())
}

func newFrameCmd(logger func(io.Writer) *zap.Logger) *cobra.Command {
	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "Build, decode and inspect frames",
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [HEX]",
		Short: "Print the header and payload sizes of a frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := input(cmd, args)
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), b)
		},
	}

	var enc frameOpts
	encodeCmd := &cobra.Command{
		Use:   "encode JSON...",
		Short: "Frame JSON documents with the chosen codec",
		Long: `Each argument is parsed as a JSON document and framed with the chosen codec.
Without --batch or --stream every document becomes its own frame, printed in
hex on its own line. --stream writes raw length-prefixed frames instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFramer(enc, logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer f.Close()

			vs := make([]any, 0, len(args))
			for _, a := range args {
				var v any
				if err := json.Unmarshal([]byte(a), &v); err != nil {
					return fmt.Errorf("parse %q: %w", a, err)
				}
				vs = append(vs, v)
			}
			out := cmd.OutOrStdout()

			switch {
			case enc.stream:
				bw := bufio.NewWriter(out)
				for _, v := range vs {
					if _, err := f.WriteFrame(bw, v); err != nil {
						return err
					}
				}
				return bw.Flush()
			case enc.batch:
				frame, err := f.EncodeBatch(vs)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, hex.EncodeToString(frame))
			default:
				for _, v := range vs {
					frame, err := f.Encode(v)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, hex.EncodeToString(frame))
				}
			}
			return nil
		},
	}
	encodeCmd.Flags().StringVarP(&enc.codec, "codec", "c", "json", "value codec (json, cbor, msgpack)")
	encodeCmd.Flags().BoolVarP(&enc.compress, "compress", "z", false, "zstd-compress payloads")
	encodeCmd.Flags().BoolVarP(&enc.batch, "batch", "b", false, "put all documents in one batch frame")
	encodeCmd.Flags().BoolVar(&enc.stream, "stream", false, "write a raw length-prefixed frame stream")
	encodeCmd.MarkFlagsMutuallyExclusive("batch", "stream")

	var dec frameOpts
	decodeCmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Decode a frame and print its values",
		Long: `Decodes a single or batch frame given in hex, or read raw from stdin. With
--stream, stdin holds length-prefixed frames as written by "encode --stream".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFramer(dec, logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer f.Close()
			out := cmd.OutOrStdout()

			if dec.stream {
				r := bufio.NewReader(cmd.InOrStdin())
				for {
					v, err := f.ReadFrame(r)
					if errors.Is(err, io.EOF) {
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%v\n", v)
				}
			}

			b, err := input(cmd, args)
			if err != nil {
				return err
			}
			h, err := wire.ReadHeader(b)
			if err != nil {
				return err
			}
			vs := make([]any, 0, 1)
			if h.Kind == wire.KindBatch {
				if vs, err = f.DecodeBatch(b); err != nil {
					return err
				}
			} else {
				v, err := f.Decode(b)
				if err != nil {
					return err
				}
				vs = append(vs, v)
			}
			for _, v := range vs {
				fmt.Fprintf(out, "%v\n", v)
			}
			return nil
		},
	}
	decodeCmd.Flags().StringVarP(&dec.codec, "codec", "c", "json", "value codec (json, cbor, msgpack)")
	decodeCmd.Flags().BoolVar(&dec.stream, "stream", false, "read a length-prefixed frame stream from stdin")

	frameCmd.AddCommand(inspectCmd, encodeCmd, decodeCmd)
	return frameCmd
}

func inspect(w io.Writer, b []byte) error {
	h, err := wire.ReadHeader(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "version\t%d\nkind\t%v\ncompressed\t%t\n",
		h.Version, h.Kind, h.Flags.Has(wire.FlagCompressed))

	var payloads [][]byte
	if h.Kind == wire.KindBatch {
		_, payloads, err = wire.DecodeBatch(b)
	} else {
		var p []byte
		_, p, err = wire.DecodeSingle(b)
		payloads = [][]byte{p}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "payloads\t%d\n", len(payloads))
	for i, p := range payloads {
		fmt.Fprintf(w, "  [%d]\t%d bytes\n", i, len(p))
	}
	return nil
}
