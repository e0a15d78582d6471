package formats

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/modelconv/pkg/math"
	"github.com/Faultbox/modelconv/pkg/model"
)

func TestOFFParser(t *testing.T) {
	text := "OFF\n" +
		"# a square and a stray quad\n" +
		"4 3 0\n" +
		"0 0 0\n1 0 0\n\n1 1 0\n0 1 0\n" +
		"3 0 1 2\n" +
		"4 0 1 2 3\n" +
		"3 0 2 3\n"
	doc := mustParseText(t, NewOFFParser, "sq.off", text)

	if len(doc.Vertices()) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(doc.Vertices()))
	}
	if got := doc.Vertices()[2]; got != (math.Vec3{X: 1, Y: 1}) {
		t.Errorf("expected vertex (1, 1, 0), got %s", got)
	}

	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if got := faceVertices(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected faces %v, got %v", want, got)
	}
}

func TestOFFParser_CountsOnHeaderLine(t *testing.T) {
	doc := mustParseText(t, NewOFFParser, "tri.off", "OFF 3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2")

	if doc.FaceCount() != 1 {
		t.Errorf("expected 1 face, got %d", doc.FaceCount())
	}
}

func TestOFFParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrMalformedHeader},
		{"header only", "OFF\n", ErrMalformedHeader},
		{"bad counts", "OFF\nthree 1 0\n", ErrMalformedHeader},
		{"missing vertices", "OFF\n3 1 0\n0 0 0\n", ErrTruncatedContent},
		{"bad face", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 one 2\n", ErrMalformedRecord},
		{"face out of range", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n", model.ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseText(t, NewOFFParser, "bad.off", tt.text, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOFFExporter(t *testing.T) {
	doc := mustParseText(t, NewOBJParser, "sq.obj", objSquare+"f 1 2 3 4\n")

	var sb strings.Builder
	if err := NewOFFExporter(doc).Export(&sb); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := "OFF\n4 2 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n3 0 1 2\n3 0 2 3\n"
	if sb.String() != want {
		t.Errorf("unexpected OFF output:\n%s\nwant:\n%s", sb.String(), want)
	}

	again := mustParseText(t, NewOFFParser, "sq.off", sb.String())
	if !reflect.DeepEqual(faceVertices(again), faceVertices(doc)) {
		t.Error("round trip changed the faces")
	}
}
