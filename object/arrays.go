package object

import (
	"sort"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/token"
)

// biggest number of elements a single DIM may ask for
const maxElements = 1 << 24

// Dims describes the shape of an array, subscripts run 0..size-1
type Dims []int

// NumArray holds doubles in row-major order
type NumArray struct {
	Name string
	Dims Dims
	Data []float64
}

// StrArray holds strings in row-major order
type StrArray struct {
	Name string
	Dims Dims
	Data []string
}

// Offset checks the subscripts and turns them into a slot number
func (d Dims) Offset(subs []int) (int, error) {
	if len(subs) != len(d) {
		return 0, berrors.New(berrors.TooManySubscripts, "")
	}

	off := 0
	for i, s := range subs {
		if s < 0 || s >= d[i] {
			return 0, berrors.New(berrors.SubscriptRange, "")
		}
		off = off*d[i] + s
	}
	return off, nil
}

func (d Dims) total() int {
	n := 1
	for _, sz := range d {
		n *= sz
		if n > maxElements {
			return -1
		}
	}
	return n
}

// shapeArray validates DIM sizes, anything under one becomes one
func (e *Environment) shapeArray(sizes []int) (Dims, int, error) {
	if len(sizes) == 0 || len(sizes) > e.limits.MaxDims {
		return nil, 0, berrors.New(berrors.TooManySubscripts, "")
	}
	d := make(Dims, len(sizes))
	for i, sz := range sizes {
		if sz < 1 {
			sz = 1
		}
		d[i] = sz
	}
	n := d.total()
	if n < 0 {
		return nil, 0, berrors.New(berrors.OutOfMemory, "")
	}
	return d, n, nil
}

// Dim (re)allocates an array, numeric or string depending on the name.
// Existing contents are thrown away.
func (e *Environment) Dim(name string, sizes []int) error {
	d, n, err := e.shapeArray(sizes)
	if err != nil {
		return err
	}
	key := token.Upper(name)

	if IsStringName(name) {
		if _, ok := e.strArrays[key]; !ok && len(e.strArrays) >= e.limits.MaxArrays {
			return berrors.New(berrors.TableFull, "")
		}
		e.strArrays[key] = &StrArray{Name: name, Dims: d, Data: make([]string, n)}
		return nil
	}

	if _, ok := e.numArrays[key]; !ok && len(e.numArrays) >= e.limits.MaxArrays {
		return berrors.New(berrors.TableFull, "")
	}
	e.numArrays[key] = &NumArray{Name: name, Dims: d, Data: make([]float64, n)}
	return nil
}

// NumArray finds a numeric array
func (e *Environment) NumArray(name string) (*NumArray, bool) {
	a, ok := e.numArrays[token.Upper(name)]
	return a, ok
}

// StrArray finds a string array
func (e *Environment) StrArray(name string) (*StrArray, bool) {
	a, ok := e.strArrays[token.Upper(name)]
	return a, ok
}

// GetElement reads an array element as an Object
func (e *Environment) GetElement(name string, subs []int) (Object, error) {
	if IsStringName(name) {
		a, ok := e.StrArray(name)
		if !ok {
			return &String{}, berrors.New(berrors.UndimensionedArray, name)
		}
		off, err := a.Dims.Offset(subs)
		if err != nil {
			return &String{}, err
		}
		return &String{Value: a.Data[off]}, nil
	}

	a, ok := e.NumArray(name)
	if !ok {
		return &Number{}, berrors.New(berrors.UndimensionedArray, name)
	}
	off, err := a.Dims.Offset(subs)
	if err != nil {
		return &Number{}, err
	}
	return &Number{Value: a.Data[off]}, nil
}

// SetElement stores into an array element, the value is converted to
// the array's kind
func (e *Environment) SetElement(name string, subs []int, val Object) error {
	if IsStringName(name) {
		a, ok := e.StrArray(name)
		if !ok {
			return berrors.New(berrors.UndimensionedArray, name)
		}
		off, err := a.Dims.Offset(subs)
		if err != nil {
			return err
		}
		a.Data[off] = TextOf(val)
		return nil
	}

	a, ok := e.NumArray(name)
	if !ok {
		return berrors.New(berrors.UndimensionedArray, name)
	}
	off, err := a.Dims.Offset(subs)
	if err != nil {
		return err
	}
	a.Data[off] = NumberOf(val)
	return nil
}

// NumArrays lists the numeric arrays by name
func (e *Environment) NumArrays() []*NumArray {
	var arrs []*NumArray
	for _, a := range e.numArrays {
		arrs = append(arrs, a)
	}
	sort.Slice(arrs, func(i, j int) bool { return token.Upper(arrs[i].Name) < token.Upper(arrs[j].Name) })
	return arrs
}

// StrArrays lists the string arrays by name
func (e *Environment) StrArrays() []*StrArray {
	var arrs []*StrArray
	for _, a := range e.strArrays {
		arrs = append(arrs, a)
	}
	sort.Slice(arrs, func(i, j int) bool { return token.Upper(arrs[i].Name) < token.Upper(arrs[j].Name) })
	return arrs
}
