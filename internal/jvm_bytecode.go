package internal

import (
	"encoding/binary"
	"fmt"
)

// JVM opcodes used by the backend.
const (
	opAload0        byte = 0x2a
	opBipush        byte = 0x10
	opLdc           byte = 0x12
	opLdcW          byte = 0x13
	opIload         byte = 0x15
	opAload         byte = 0x19
	opIstore        byte = 0x36
	opAstore        byte = 0x3a
	opIadd          byte = 0x60
	opIfeq          byte = 0x99
	opIfne          byte = 0x9a
	opIfIcmpeq      byte = 0x9f
	opIfIcmpne      byte = 0xa0
	opGoto          byte = 0xa7
	opReturn        byte = 0xb1
	opGetstatic     byte = 0xb2
	opInvokevirtual byte = 0xb6
	opInvokespecial byte = 0xb7
)

type label int

type instrKind int

const (
	instrBare instrKind = iota
	instrLabel
	instrBranch
	instrByteOperand
	instrWideOperand
)

// instruction is one JVM instruction with symbolic branch targets. Label
// markers occupy zero bytes and only pin an offset for branches.
type instruction struct {
	op      byte
	kind    instrKind
	label   label
	operand uint16
}

func bare(op byte) instruction {
	return instruction{op: op, kind: instrBare}
}

func labelMark(l label) instruction {
	return instruction{kind: instrLabel, label: l}
}

func branch(op byte, l label) instruction {
	return instruction{op: op, kind: instrBranch, label: l}
}

func byteOperand(op byte, operand uint16) instruction {
	return instruction{op: op, kind: instrByteOperand, operand: operand}
}

func wideOperand(op byte, operand uint16) instruction {
	return instruction{op: op, kind: instrWideOperand, operand: operand}
}

// ldc uses the single-byte form when the pool index fits, ldc_w otherwise.
func loadConstant(index uint16) instruction {
	if index <= 0xff {
		return byteOperand(opLdc, index)
	}
	return wideOperand(opLdcW, index)
}

func (i instruction) size() int {
	switch i.kind {
	case instrLabel:
		return 0
	case instrBranch, instrWideOperand:
		return 3
	case instrByteOperand:
		return 2
	}
	return 1
}

// assemble resolves labels to signed 16-bit offsets relative to the start
// of the branching instruction and emits the final byte stream.
func assemble(code []instruction) ([]byte, error) {
	offsets := make(map[label]int)
	offset := 0
	for _, in := range code {
		if in.kind == instrLabel {
			offsets[in.label] = offset
			continue
		}
		offset += in.size()
	}

	var out []byte
	offset = 0
	for _, in := range code {
		switch in.kind {
		case instrLabel:
			continue
		case instrBare:
			out = append(out, in.op)
		case instrByteOperand:
			out = append(out, in.op, byte(in.operand))
		case instrWideOperand:
			out = append(out, in.op)
			out = binary.BigEndian.AppendUint16(out, in.operand)
		case instrBranch:
			target, ok := offsets[in.label]
			if !ok {
				return nil, fmt.Errorf("branch to unknown label %d", in.label)
			}
			out = append(out, in.op)
			out = binary.BigEndian.AppendUint16(out, uint16(int16(target-offset)))
		}
		offset += in.size()
	}
	return out, nil
}

type labelGenerator struct {
	next label
}

func (g *labelGenerator) newLabel() label {
	l := g.next
	g.next++
	return l
}
