// Command scenectl is a small client for inspecting and driving a
// running scened: converting between the binary and text codecs,
// dumping a file's token stream, and sending a patch stream over the
// wire.
package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/codec/binary"
	"github.com/sceneproto/scene/codec/text"
	"github.com/sceneproto/scene/common/version"
	"github.com/sceneproto/scene/value"
)

func errorf(format string, a ...interface{}) error {
	return cli.NewExitError(color.New(color.FgHiRed).Sprintf(format, a...), 1)
}

func openCodecReader(format, path string) (codec.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	switch format {
	case "binary":
		return binary.NewReader(f), f, nil
	case "text":
		return text.NewReader(f), f, nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unknown format %q (want binary or text)", format)
	}
}

func openCodecWriter(format string, w io.Writer) (codec.Writer, error) {
	switch format {
	case "binary":
		return binary.NewWriter(w), nil
	case "text":
		return text.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want binary or text)", format)
	}
}

func flushWriter(w codec.Writer) {
	switch ww := w.(type) {
	case *binary.Writer:
		ww.Flush()
	case *text.Writer:
		ww.Flush()
	}
}

// copyTokens drains every token from r and replays it into w, the
// shared core of convert, dump, send and copy.
func copyTokens(r codec.Reader, w codec.Writer) (int, error) {
	n := 0
	for {
		tok, err := r.ReadNext()
		if err != nil {
			return n, err
		}
		switch tok.Kind {
		case value.TokenEOF:
			return n, nil
		case value.TokenStart:
			if err := w.WriteStart(); err != nil {
				return n, err
			}
		case value.TokenEnd:
			if err := w.WriteEnd(); err != nil {
				return n, err
			}
		case value.TokenValue:
			if err := w.WriteValue(tok.Value); err != nil {
				return n, err
			}
		}
		n++
	}
}

func convertCommand(c *cli.Context) error {
	in, inFormat, out, outFormat := c.Args().Get(0), c.String("from"), c.Args().Get(1), c.String("to")
	if in == "" || out == "" {
		return errorf("usage: scenectl convert --from FORMAT --to FORMAT IN OUT")
	}
	r, closer, err := openCodecReader(inFormat, in)
	if err != nil {
		return errorf("%s", err)
	}
	defer closer.Close()

	outFile, err := os.Create(out)
	if err != nil {
		return errorf("%s", err)
	}
	defer outFile.Close()
	w, err := openCodecWriter(outFormat, outFile)
	if err != nil {
		return errorf("%s", err)
	}

	if _, err := copyTokens(r, w); err != nil {
		return errorf("converting: %s", err)
	}
	flushWriter(w)
	color.New(color.FgHiGreen).Println("converted", in, "->", out)
	return nil
}

func dumpCommand(c *cli.Context) error {
	in := c.Args().Get(0)
	if in == "" {
		return errorf("usage: scenectl dump --format FORMAT FILE")
	}
	r, closer, err := openCodecReader(c.String("format"), in)
	if err != nil {
		return errorf("%s", err)
	}
	defer closer.Close()

	// Echo to a text writer over stdout so dump doubles as a quick
	// binary-to-text preview.
	w := text.NewWriter(os.Stdout)
	n, err := copyTokens(r, w)
	w.Flush()
	if err != nil {
		return errorf("dumping after %d tokens: %s", n, err)
	}
	fmt.Println()
	return nil
}

func sendCommand(c *cli.Context) error {
	addr, path := c.String("addr"), c.Args().Get(0)
	if path == "" {
		return errorf("usage: scenectl send --addr HOST:PORT FILE")
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return errorf("connecting to %s: %s", addr, err)
	}
	defer conn.Close()

	r, closer, err := openCodecReader(c.String("format"), path)
	if err != nil {
		return errorf("%s", err)
	}
	defer closer.Close()

	w := text.NewWriter(conn)
	if _, err := copyTokens(r, w); err != nil {
		return errorf("sending: %s", err)
	}
	w.Flush()
	color.New(color.FgHiGreen).Println("sent", path, "to", addr)
	return nil
}

func copyCommand(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		return errorf("usage: scenectl copy --format FORMAT FILE")
	}
	r, closer, err := openCodecReader(c.String("format"), path)
	if err != nil {
		return errorf("%s", err)
	}
	defer closer.Close()

	var buf bytes.Buffer
	w := text.NewWriter(&buf)
	if _, err := copyTokens(r, w); err != nil {
		return errorf("copying: %s", err)
	}
	w.Flush()
	if err := clipboard.WriteAll(buf.String()); err != nil {
		return errorf("writing to clipboard: %s", err)
	}
	color.New(color.FgHiGreen).Println("copied text form of", path, "to clipboard")
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "scenectl"
	app.Usage = "inspect and drive a scened instance"
	app.Version = version.Current.String()
	app.Commands = []cli.Command{
		{
			Name:  "convert",
			Usage: "convert a scene stream between the binary and text codecs",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "from", Value: "binary"},
				cli.StringFlag{Name: "to", Value: "text"},
			},
			Action: convertCommand,
		},
		{
			Name:  "dump",
			Usage: "print a scene stream's tokens as text",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format", Value: "binary"},
			},
			Action: dumpCommand,
		},
		{
			Name:  "send",
			Usage: "send a scene stream to a running scened as a root patch",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Value: "127.0.0.1:1234"},
				cli.StringFlag{Name: "format", Value: "text"},
			},
			Action: sendCommand,
		},
		{
			Name:  "copy",
			Usage: "copy a scene stream's text form to the clipboard",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format", Value: "binary"},
			},
			Action: copyCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.New(color.FgHiRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
