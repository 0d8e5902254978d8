package backends

// BinaryOpType selects the arithmetic operation applied by Context.Binary.
type BinaryOpType int

//go:generate go tool enumer -type=BinaryOpType -trimprefix=BinaryOp -output=gen_binaryoptype_enumer.go binop.go

const (
	BinaryOpInvalid BinaryOpType = iota
	BinaryOpAdd
	BinaryOpSub
	BinaryOpMul
	BinaryOpDiv
)
