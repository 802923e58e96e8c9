// Package qasm reads and writes OpenQASM 2.0 programs as operation DAGs.
package qasm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"zxdeck/dag"
)

var (
	ErrSyntax      = errors.New("qasm syntax error")
	ErrUndeclared  = errors.New("undeclared register")
	ErrUnsupported = errors.New("unsupported qasm construct")
)

// MaxRegisterSize bounds a single qreg or creg declaration.
const MaxRegisterSize = 1 << 16

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	measureRegex = regexp.MustCompile(`^measure\s+(.+?)\s*->\s*(.+)$`)
	ifRegex      = regexp.MustCompile(`^if\s*\(\s*(\w+)(?:\s*\[\s*(\d+)\s*\])?\s*==\s*(\d+)\s*\)\s*(.+)$`)
	gateRegex    = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?:\(([^)]*)\))?\s*(.*)$`)
	argRegex     = regexp.MustCompile(`^(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)
)

type parser struct {
	d     *dag.DAGCircuit
	qregs map[string]*dag.QuantumRegister
	cregs map[string]*dag.ClassicalRegister
	line  int
}

// Parse builds a DAG from QASM source. Registers are declared in source
// order; operations are appended in program order.
func Parse(src string) (*dag.DAGCircuit, error) {
	p := &parser{
		d:     dag.New(),
		qregs: make(map[string]*dag.QuantumRegister),
		cregs: make(map[string]*dag.ClassicalRegister),
	}
	for i, line := range strings.Split(src, "\n") {
		p.line = i + 1
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := p.statement(stmt); err != nil {
				return nil, err
			}
		}
	}
	return p.d, nil
}

func (p *parser) errorf(err error, format string, args ...any) error {
	return errors.Wrapf(err, "line %d: "+format, append([]any{p.line}, args...)...)
}

func (p *parser) statement(stmt string) error {
	switch {
	case strings.HasPrefix(stmt, "OPENQASM"), strings.HasPrefix(stmt, "include"):
		return nil
	case strings.HasPrefix(stmt, "gate ") || strings.HasPrefix(stmt, "opaque "):
		return p.errorf(ErrUnsupported, "gate definitions")
	}

	if m := qregRegex.FindStringSubmatch(stmt); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n > MaxRegisterSize {
			return p.errorf(ErrSyntax, "qreg %s[%s] exceeds %d bits", m[1], m[2], MaxRegisterSize)
		}
		reg := dag.NewQuantumRegister(m[1], n)
		if _, dup := p.qregs[m[1]]; dup {
			return p.errorf(ErrSyntax, "qreg %s redeclared", m[1])
		}
		p.qregs[m[1]] = reg
		return p.d.AddQReg(reg)
	}
	if m := cregRegex.FindStringSubmatch(stmt); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n > MaxRegisterSize {
			return p.errorf(ErrSyntax, "creg %s[%s] exceeds %d bits", m[1], m[2], MaxRegisterSize)
		}
		reg := dag.NewClassicalRegister(m[1], n)
		if _, dup := p.cregs[m[1]]; dup {
			return p.errorf(ErrSyntax, "creg %s redeclared", m[1])
		}
		p.cregs[m[1]] = reg
		return p.d.AddCReg(reg)
	}

	var cond *dag.Condition
	if m := ifRegex.FindStringSubmatch(stmt); m != nil {
		reg, ok := p.cregs[m[1]]
		if !ok {
			return p.errorf(ErrUndeclared, "creg %s", m[1])
		}
		value, err := strconv.Atoi(m[3])
		if err != nil {
			return p.errorf(ErrSyntax, "condition value %s", m[3])
		}
		cond = &dag.Condition{Register: reg, Value: value}
		if m[2] != "" {
			idx, _ := strconv.Atoi(m[2])
			if idx >= reg.Size() {
				return p.errorf(ErrSyntax, "%s[%d] out of range", reg.Name, idx)
			}
			cond = &dag.Condition{Bit: reg.Bits[idx], Value: value}
		}
		stmt = strings.TrimSpace(m[4])
	}

	if m := measureRegex.FindStringSubmatch(stmt); m != nil {
		return p.measure(m[1], m[2], cond)
	}
	return p.gate(stmt, cond)
}

// qubitArg resolves "q[i]" to one qubit or "q" to the whole register.
func (p *parser) qubitArg(arg string) ([]*dag.Qubit, bool, error) {
	m := argRegex.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil {
		return nil, false, p.errorf(ErrSyntax, "bad operand %q", arg)
	}
	reg, ok := p.qregs[m[1]]
	if !ok {
		return nil, false, p.errorf(ErrUndeclared, "qreg %s", m[1])
	}
	if m[2] == "" {
		return reg.Bits, true, nil
	}
	idx, _ := strconv.Atoi(m[2])
	if idx >= reg.Size() {
		return nil, false, p.errorf(ErrSyntax, "%s[%d] out of range", reg.Name, idx)
	}
	return []*dag.Qubit{reg.Bits[idx]}, false, nil
}

func (p *parser) clbitArg(arg string) ([]*dag.Clbit, bool, error) {
	m := argRegex.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil {
		return nil, false, p.errorf(ErrSyntax, "bad operand %q", arg)
	}
	reg, ok := p.cregs[m[1]]
	if !ok {
		return nil, false, p.errorf(ErrUndeclared, "creg %s", m[1])
	}
	if m[2] == "" {
		return reg.Bits, true, nil
	}
	idx, _ := strconv.Atoi(m[2])
	if idx >= reg.Size() {
		return nil, false, p.errorf(ErrSyntax, "%s[%d] out of range", reg.Name, idx)
	}
	return []*dag.Clbit{reg.Bits[idx]}, false, nil
}

func (p *parser) measure(src, dst string, cond *dag.Condition) error {
	qs, _, err := p.qubitArg(src)
	if err != nil {
		return err
	}
	cs, _, err := p.clbitArg(dst)
	if err != nil {
		return err
	}
	if len(qs) != len(cs) {
		return p.errorf(ErrSyntax, "measure %s -> %s: size mismatch", src, dst)
	}
	for i := range qs {
		op := dag.Operation{Name: "measure", Condition: cond}
		if _, err := p.d.ApplyOperationBack(op, []*dag.Qubit{qs[i]}, []*dag.Clbit{cs[i]}); err != nil {
			return p.errorf(err, "measure")
		}
	}
	return nil
}

// gate parses "name(params) a, b, ..." and applies it, broadcasting over
// whole-register operands.
func (p *parser) gate(stmt string, cond *dag.Condition) error {
	m := gateRegex.FindStringSubmatch(stmt)
	if m == nil || strings.TrimSpace(m[3]) == "" {
		return p.errorf(ErrSyntax, "%q", stmt)
	}
	name := strings.ToLower(m[1])

	var params []float64
	if strings.TrimSpace(m[2]) != "" {
		params = ParseParams(m[2])
		if params == nil {
			return p.errorf(ErrSyntax, "bad parameters %q", m[2])
		}
	}

	var args [][]*dag.Qubit
	width := 1
	for _, arg := range strings.Split(m[3], ",") {
		qs, whole, err := p.qubitArg(arg)
		if err != nil {
			return err
		}
		if whole {
			if width > 1 && len(qs) != width {
				return p.errorf(ErrSyntax, "%s: register sizes differ", name)
			}
			width = len(qs)
		}
		args = append(args, qs)
	}

	if name == "barrier" {
		var qargs []*dag.Qubit
		for _, qs := range args {
			qargs = append(qargs, qs...)
		}
		_, err := p.d.ApplyOperationBack(dag.Operation{Name: name, Condition: cond}, qargs, nil)
		if err != nil {
			return p.errorf(err, "barrier")
		}
		return nil
	}

	for i := range width {
		qargs := make([]*dag.Qubit, len(args))
		for j, qs := range args {
			if len(qs) == 1 {
				qargs[j] = qs[0]
			} else {
				qargs[j] = qs[i]
			}
		}
		op := dag.Operation{Name: name, Params: params, Condition: cond}
		if _, err := p.d.ApplyOperationBack(op, qargs, nil); err != nil {
			return p.errorf(err, "%s", name)
		}
	}
	return nil
}
