package internal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// The secondary backend: compiles the body of `fn main` to a JVM class
// file instead of evaluating it. It shares the AST with the evaluator and
// nothing else. Only a statement-shaped subset of the language is
// supported; everything outside it is a compile error.

var errUnsupportedBytecode = errors.New("Expression is not supported by the bytecode backend")
var errNoMainFunction = errors.New("Bytecode backend requires a 'fn main () { ... }' definition")
var errIntOutOfRange = errors.New("Integer literal does not fit a JVM int")

const (
	accPublic uint16 = 0x0001
	accStatic uint16 = 0x0008
	accSuper  uint16 = 0x0020
)

const (
	classMagic   uint32 = 0xCAFEBABE
	classMinor   uint16 = 0
	classMajor   uint16 = 52 // Java 8
	codeMaxStack uint16 = 10
	codeMaxLocal uint16 = 10
)

type pseudoOp int

const (
	psLabel pseudoOp = iota
	psGoto
	psPushInt
	psPushStr
	psPushBool
	psLoad
	psStoreNew
	psStore
	psAdd
	psCmpEq
	psCmpNe
	psIfeq
	psPrintStream
	psPrintln
	psReturn
)

type pseudo struct {
	op    pseudoOp
	label label
	name  string
	ival  int32
	sval  string
	bval  bool
}

// codeCompiler walks the AST and emits pseudo instructions with symbolic
// labels; types and local slots are resolved later, during lowering.
type codeCompiler struct {
	state  *interpreterState
	code   []pseudo
	labels labelGenerator
}

func (c *codeCompiler) emit(p pseudo) {
	c.code = append(c.code, p)
}

func (c *codeCompiler) unsupported(node expr) {
	c.state.fatalError(errUnsupportedBytecode, node.pos().line)
}

func (c *codeCompiler) compile(node expr) {
	switch n := node.(type) {
	case *literalExpr:
		c.compileLiteral(n)
	case *variableExpr:
		c.emit(pseudo{op: psLoad, name: n.name.lexeme})
	case *letExpr:
		c.compile(n.init)
		c.emit(pseudo{op: psStoreNew, name: n.name.lexeme})
	case *assignExpr:
		c.compile(n.value)
		c.emit(pseudo{op: psStore, name: n.name.lexeme})
	case *blockExpr:
		for _, ex := range n.exprs {
			c.compile(ex)
		}
	case *ifExpr:
		c.compileIf(n)
	case *whileExpr:
		c.compileWhile(n)
	case *binaryExpr:
		c.compileBinary(n)
	case *builtinExpr:
		c.compileBuiltin(n)
	default:
		c.unsupported(node)
	}
}

func (c *codeCompiler) compileLiteral(n *literalExpr) {
	switch v := n.value.(type) {
	case intVal:
		if int64(v) < math.MinInt32 || int64(v) > math.MaxInt32 {
			c.state.fatalError(errIntOutOfRange, n.token.line)
		}
		c.emit(pseudo{op: psPushInt, ival: int32(v)})
	case strVal:
		c.emit(pseudo{op: psPushStr, sval: string(v)})
	case boolVal:
		c.emit(pseudo{op: psPushBool, bval: bool(v)})
	default:
		c.unsupported(n)
	}
}

func (c *codeCompiler) compileIf(n *ifExpr) {
	if n.elseBranch == nil {
		out := c.labels.newLabel()
		c.compile(n.cond)
		c.emit(pseudo{op: psIfeq, label: out})
		c.compile(n.thenBranch)
		c.emit(pseudo{op: psLabel, label: out})
		return
	}

	elseLabel := c.labels.newLabel()
	out := c.labels.newLabel()
	c.compile(n.cond)
	c.emit(pseudo{op: psIfeq, label: elseLabel})
	c.compile(n.thenBranch)
	c.emit(pseudo{op: psGoto, label: out})
	c.emit(pseudo{op: psLabel, label: elseLabel})
	c.compile(n.elseBranch)
	c.emit(pseudo{op: psLabel, label: out})
}

func (c *codeCompiler) compileWhile(n *whileExpr) {
	guard := c.labels.newLabel()
	out := c.labels.newLabel()
	c.emit(pseudo{op: psLabel, label: guard})
	c.compile(n.cond)
	c.emit(pseudo{op: psIfeq, label: out})
	c.compile(n.body)
	c.emit(pseudo{op: psGoto, label: guard})
	c.emit(pseudo{op: psLabel, label: out})
}

func (c *codeCompiler) compileBinary(n *binaryExpr) {
	c.compile(n.left)
	c.compile(n.right)
	switch n.operator.token {
	case tkPlus:
		c.emit(pseudo{op: psAdd})
	case tkEqualEqual:
		c.emit(pseudo{op: psCmpEq})
	case tkBangEqual:
		c.emit(pseudo{op: psCmpNe})
	default:
		c.unsupported(n)
	}
}

func (c *codeCompiler) compileBuiltin(n *builtinExpr) {
	if n.name.lexeme != "println" || len(n.args) != 1 {
		c.unsupported(n)
	}
	// The receiver must sit below the argument on the operand stack.
	c.emit(pseudo{op: psPrintStream})
	c.compile(n.args[0])
	c.emit(pseudo{op: psPrintln})
}

type jvmType int

const (
	jtInt jvmType = iota
	jtBool
	jtRef
)

type localSlot struct {
	index uint16
	typ   jvmType
}

// lowerPseudo resolves pseudo instructions into JVM instructions, tracking
// operand types so loads, stores and println dispatch pick the right
// opcode and descriptor.
func lowerPseudo(code []pseudo, lg *labelGenerator, cp *constantPool) ([]instruction, error) {
	var out []instruction
	var stack []jvmType
	locals := make(map[string]localSlot)
	nextSlot := uint16(1) // slot 0 holds the String[] argument of main

	pop := func() (jvmType, error) {
		if len(stack) == 0 {
			return 0, errors.New("operand stack underflow in bytecode backend")
		}
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t, nil
	}

	for _, p := range code {
		switch p.op {
		case psLabel:
			out = append(out, labelMark(p.label))
		case psGoto:
			out = append(out, branch(opGoto, p.label))
		case psPushInt:
			out = append(out, loadConstant(cp.addInteger(p.ival)))
			stack = append(stack, jtInt)
		case psPushStr:
			out = append(out, loadConstant(cp.addString(p.sval)))
			stack = append(stack, jtRef)
		case psPushBool:
			b := byte(0)
			if p.bval {
				b = 1
			}
			out = append(out, byteOperand(opBipush, uint16(b)))
			stack = append(stack, jtBool)
		case psLoad:
			slot, ok := locals[p.name]
			if !ok {
				return nil, fmt.Errorf("undefined variable %q in bytecode backend", p.name)
			}
			if slot.typ == jtRef {
				out = append(out, byteOperand(opAload, slot.index))
			} else {
				out = append(out, byteOperand(opIload, slot.index))
			}
			stack = append(stack, slot.typ)
		case psStoreNew, psStore:
			t, err := pop()
			if err != nil {
				return nil, err
			}
			slot, ok := locals[p.name]
			if p.op == psStoreNew || !ok {
				slot = localSlot{index: nextSlot, typ: t}
				locals[p.name] = slot
				nextSlot++
			}
			if slot.typ == jtRef {
				out = append(out, byteOperand(opAstore, slot.index))
			} else {
				out = append(out, byteOperand(opIstore, slot.index))
			}
		case psAdd:
			r, err := pop()
			if err != nil {
				return nil, err
			}
			l, err := pop()
			if err != nil {
				return nil, err
			}
			if l != jtInt || r != jtInt {
				return nil, errors.New("'+' only supports Int operands in the bytecode backend")
			}
			out = append(out, bare(opIadd))
			stack = append(stack, jtInt)
		case psCmpEq, psCmpNe:
			r, err := pop()
			if err != nil {
				return nil, err
			}
			l, err := pop()
			if err != nil {
				return nil, err
			}
			if l == jtRef || r == jtRef {
				return nil, errors.New("equality only supports Int operands in the bytecode backend")
			}
			falseBranch := opIfIcmpne
			if p.op == psCmpNe {
				falseBranch = opIfIcmpeq
			}
			falseLabel := lg.newLabel()
			outLabel := lg.newLabel()
			out = append(out,
				branch(falseBranch, falseLabel),
				byteOperand(opBipush, 1),
				branch(opGoto, outLabel),
				labelMark(falseLabel),
				byteOperand(opBipush, 0),
				labelMark(outLabel),
			)
			stack = append(stack, jtBool)
		case psIfeq:
			if _, err := pop(); err != nil {
				return nil, err
			}
			out = append(out, branch(opIfeq, p.label))
		case psPrintStream:
			index := cp.addFieldRef("java/lang/System", "out", "Ljava/io/PrintStream;")
			out = append(out, wideOperand(opGetstatic, index))
		case psPrintln:
			t, err := pop()
			if err != nil {
				return nil, err
			}
			descriptor := "(Ljava/lang/String;)V"
			switch t {
			case jtInt:
				descriptor = "(I)V"
			case jtBool:
				descriptor = "(Z)V"
			}
			index := cp.addMethodRef("java/io/PrintStream", "println", descriptor)
			out = append(out, wideOperand(opInvokevirtual, index))
		case psReturn:
			out = append(out, bare(opReturn))
		}
	}
	return out, nil
}

type attributeInfo struct {
	nameIndex uint16
	info      []byte
}

type methodInfo struct {
	accessFlags     uint16
	nameIndex       uint16
	descriptorIndex uint16
	attributes      []attributeInfo
}

type classFile struct {
	pool        *constantPool
	accessFlags uint16
	thisClass   uint16
	superClass  uint16
	methods     []methodInfo
	attributes  []attributeInfo
}

func (c *classFile) codeAttribute(code []byte) attributeInfo {
	var info []byte
	info = binary.BigEndian.AppendUint16(info, codeMaxStack)
	info = binary.BigEndian.AppendUint16(info, codeMaxLocal)
	info = binary.BigEndian.AppendUint32(info, uint32(len(code)))
	info = append(info, code...)
	info = binary.BigEndian.AppendUint16(info, 0) // exception table length
	info = binary.BigEndian.AppendUint16(info, 0) // attributes count
	return attributeInfo{nameIndex: c.pool.addUtf8("Code"), info: info}
}

func (c *classFile) addMethod(name, descriptor string, accessFlags uint16, code []byte) {
	c.methods = append(c.methods, methodInfo{
		accessFlags:     accessFlags,
		nameIndex:       c.pool.addUtf8(name),
		descriptorIndex: c.pool.addUtf8(descriptor),
		attributes:      []attributeInfo{c.codeAttribute(code)},
	})
}

func (c *classFile) write(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, classMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, classMinor); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, classMajor); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, c.pool.count()); err != nil {
		return err
	}
	if err := c.pool.write(w); err != nil {
		return err
	}
	for _, v := range []uint16{c.accessFlags, c.thisClass, c.superClass, 0 /* interfaces */, 0 /* fields */} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(c.methods))); err != nil {
		return err
	}
	for _, m := range c.methods {
		for _, v := range []uint16{m.accessFlags, m.nameIndex, m.descriptorIndex, uint16(len(m.attributes))} {
			if err := binary.Write(w, binary.BigEndian, v); err != nil {
				return err
			}
		}
		if err := writeAttributes(w, m.attributes); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(c.attributes))); err != nil {
		return err
	}
	return writeAttributes(w, c.attributes)
}

func writeAttributes(w io.Writer, attrs []attributeInfo) error {
	for _, a := range attrs {
		if err := binary.Write(w, binary.BigEndian, a.nameIndex); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(a.info))); err != nil {
			return err
		}
		if _, err := w.Write(a.info); err != nil {
			return err
		}
	}
	return nil
}

// CompileSource parses the script and emits a Main class file at outPath.
// Diagnostics go to the console's error stream; the return value reports
// overall success.
func CompileSource(absPath, source, outPath string, console *Console) bool {
	state := newInterpreterState(absPath, source)

	newLexer(state).scan()
	if !state.valid() {
		state.printErrors(console.Stderr)
		return false
	}
	newParser(state).parse()
	if !state.valid() {
		state.printErrors(console.Stderr)
		return false
	}

	class, err := compileProgram(state)
	if err != nil {
		if !state.valid() {
			state.printErrors(console.Stderr)
		} else {
			fmt.Fprintln(console.Stderr, err)
		}
		return false
	}
	class.attributes = append(class.attributes, attributeInfo{
		nameIndex: class.pool.addUtf8("SourceFile"),
		info:      binary.BigEndian.AppendUint16(nil, class.pool.addUtf8(filepath.Base(absPath))),
	})

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(console.Stderr, err)
		return false
	}
	defer f.Close()
	if err := class.write(f); err != nil {
		fmt.Fprintln(console.Stderr, err)
		return false
	}
	log.WithField("out", outPath).Debug("wrote class file")
	return true
}

// compileProgram compiles the body of `fn main` into a class with a
// default constructor and a static main method.
func compileProgram(state *interpreterState) (cf *classFile, err error) {
	defer func() {
		if r := recover(); r != nil {
			cf = nil
			err = errUnsupportedBytecode
		}
	}()

	body, found := findMainBody(state.exprs)
	if !found {
		return nil, errNoMainFunction
	}

	compiler := &codeCompiler{state: state}
	for _, ex := range body {
		compiler.compile(ex)
	}
	compiler.emit(pseudo{op: psReturn})

	pool := newConstantPool()
	cf = &classFile{
		pool:        pool,
		accessFlags: accPublic | accSuper,
	}
	cf.thisClass = pool.addClass("Main")
	cf.superClass = pool.addClass("java/lang/Object")

	initCode, err := assemble([]instruction{
		bare(opAload0),
		wideOperand(opInvokespecial, pool.addMethodRef("java/lang/Object", "<init>", "()V")),
		bare(opReturn),
	})
	if err != nil {
		return nil, err
	}
	cf.addMethod("<init>", "()V", accPublic, initCode)

	lowered, err := lowerPseudo(compiler.code, &compiler.labels, pool)
	if err != nil {
		return nil, err
	}
	mainCode, err := assemble(lowered)
	if err != nil {
		return nil, err
	}
	cf.addMethod("main", "([Ljava/lang/String;)V", accPublic|accStatic, mainCode)

	return cf, nil
}

func findMainBody(exprs []expr) ([]expr, bool) {
	for _, ex := range exprs {
		fn, ok := ex.(*functionExpr)
		if !ok || fn.name == nil || fn.name.lexeme != "main" {
			continue
		}
		if block, ok := fn.body.(*blockExpr); ok {
			return block.exprs, true
		}
		return []expr{fn.body}, true
	}
	return nil, false
}
