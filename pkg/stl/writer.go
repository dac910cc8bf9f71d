package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const headerSize = 80

// WriteBinary writes a model to a stream in binary STL format
func WriteBinary(w io.Writer, model *Model) error {
	var header [headerSize]byte
	copy(header[:], model.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	count := uint32(model.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, triangle := range model.Triangles {
		record := struct {
			Normal, V1, V2, V3 [3]float32
			Attribute          uint16
		}{
			Normal: [3]float32{float32(triangle.Normal.X), float32(triangle.Normal.Y), float32(triangle.Normal.Z)},
			V1:     [3]float32{float32(triangle.V1.X), float32(triangle.V1.Y), float32(triangle.V1.Z)},
			V2:     [3]float32{float32(triangle.V2.X), float32(triangle.V2.Y), float32(triangle.V2.Z)},
			V3:     [3]float32{float32(triangle.V3.X), float32(triangle.V3.Y), float32(triangle.V3.Z)},
		}
		if err := binary.Write(w, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return nil
}

// WriteBinaryFile writes a model to a binary STL file
func WriteBinaryFile(filename string, model *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteBinary(file, model)
}
