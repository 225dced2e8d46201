package render

import (
	"context"
	"os/exec"
	"testing"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestConvertWithoutRsvg(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	for name, convert := range map[string]func() ([]byte, error){
		"pdf": func() ([]byte, error) { return ToPDF(context.Background(), []byte(squareSVG)) },
		"png": func() ([]byte, error) { return ToPNG(context.Background(), []byte(squareSVG), 2) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := convert()
			if !errs.Is(err, errs.ErrCodeUnsupported) {
				t.Errorf("code = %q, want %q (err: %v)", errs.GetCode(err), errs.ErrCodeUnsupported, err)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}

	pdf, err := ToPDF(context.Background(), []byte(squareSVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("ToPDF output does not start with %%PDF")
	}

	png, err := ToPNG(context.Background(), []byte(squareSVG), 0)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG output is not a PNG")
	}
}
