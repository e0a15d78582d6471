//go:build ignore

// This program generates the binary PLY cube fixtures for unit tests.
// Run with: go run generate_ply.go
package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

var (
	cubeVertices = [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	cubeFaces = [][4]int32{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{2, 3, 7, 6}, // back
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
)

func cube(encoding string, order binary.ByteOrder) []byte {
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	fmt.Fprintf(&buf, "format %s 1.0\n", encoding)
	fmt.Fprintf(&buf, "element vertex %d\n", len(cubeVertices))
	buf.WriteString("property float x\nproperty float y\nproperty float z\n")
	fmt.Fprintf(&buf, "element face %d\n", len(cubeFaces))
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	for _, v := range cubeVertices {
		binary.Write(&buf, order, v)
	}
	for _, f := range cubeFaces {
		buf.WriteByte(uint8(len(f)))
		binary.Write(&buf, order, f)
	}

	return buf.Bytes()
}

func main() {
	files := map[string][]byte{
		"cube_le.ply": cube("binary_little_endian", binary.LittleEndian),
		"cube_be.ply": cube("binary_big_endian", binary.BigEndian),
	}
	for name, data := range files {
		if err := os.WriteFile(name, data, 0o644); err != nil {
			panic(err)
		}
	}
}
