package txn

import (
	"encoding/binary"
)

type OpKind string

const (
	OpMintStakeLp   OpKind = "mint_stake_lp"
	OpUnstakeRedeem OpKind = "unstake_redeem"
	OpClaim         OpKind = "claim"
)

// Arg is one ordered operation argument. Ordering is significant: the encoder
// writes args in slice order, so identical inputs produce identical bytes.
type Arg struct {
	Key   string
	Value string
}

type Operation struct {
	Kind OpKind
	Args []Arg
}

// Graph is an unsigned multi-operation transaction. Operations execute in
// slice order on-chain, so composition order is part of the contract.
type Graph struct {
	Sender string
	Ops    []Operation
}

const encodingVersion = 1

// Encode produces the canonical wire form of the graph. The encoding is
// deterministic: version byte, sender, then each operation's kind and args in
// order, all strings length-prefixed with little-endian u32.
func (g *Graph) Encode() []byte {
	var buf []byte
	buf = append(buf, encodingVersion)
	buf = appendString(buf, g.Sender)
	buf = appendU32(buf, uint32(len(g.Ops)))
	for _, op := range g.Ops {
		buf = appendString(buf, string(op.Kind))
		buf = appendU32(buf, uint32(len(op.Args)))
		for _, arg := range op.Args {
			buf = appendString(buf, arg.Key)
			buf = appendString(buf, arg.Value)
		}
	}
	return buf
}

func appendU32(buf []byte, v uint32) []byte {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	return append(buf, scratch[:]...)
}

func appendString(buf []byte, s string) []byte {
	buf = appendU32(buf, uint32(len(s)))
	return append(buf, s...)
}
