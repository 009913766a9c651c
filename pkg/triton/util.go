package triton

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SerializeFloat32Tensor encodes the tensor as little-endian raw bytes
func SerializeFloat32Tensor(tensor []float32) []byte {
	res := make([]byte, len(tensor)*4)
	for i, v := range tensor {
		binary.LittleEndian.PutUint32(res[i*4:], math.Float32bits(v))
	}
	return res
}

// DeserializeFloat32Tensor decodes little-endian raw bytes
func DeserializeFloat32Tensor(encodedTensor []byte) ([]float32, error) {
	if len(encodedTensor)%4 != 0 {
		return nil, fmt.Errorf("FP32 tensor of %d bytes is not a multiple of 4", len(encodedTensor))
	}
	arr := make([]float32, len(encodedTensor)/4)
	for i := range arr {
		arr[i] = math.Float32frombits(binary.LittleEndian.Uint32(encodedTensor[i*4 : i*4+4]))
	}
	return arr, nil
}

// DeserializeBytesTensor decodes length-prefixed elements
func DeserializeBytesTensor(encodedTensor []byte) ([][]byte, error) {
	var arr [][]byte
	for i := 0; i < len(encodedTensor); {
		if i+4 > len(encodedTensor) {
			return nil, fmt.Errorf("truncated BYTES tensor length at offset %d", i)
		}
		length := int(binary.LittleEndian.Uint32(encodedTensor[i : i+4]))
		i += 4
		if length < 0 || i+length > len(encodedTensor) {
			return nil, fmt.Errorf("truncated BYTES tensor element at offset %d", i)
		}
		elem := make([]byte, length)
		copy(elem, encodedTensor[i:i+length])
		arr = append(arr, elem)
		i += length
	}
	return arr, nil
}

// ImageToInput scales the RGB pixels of an HxWx3 image to [0, 1] and adds a
// batch dimension of size 1.
func ImageToInput(name string, shape []int64, pix []uint8) *InferInput {
	const scale float32 = 1.0 / 255
	data := make([]float32, len(pix))
	for i, v := range pix {
		data[i] = float32(v) * scale
	}
	return &InferInput{
		Name:  name,
		Shape: append([]int64{1}, shape...),
		Data:  data,
	}
}
