/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package classloader

import (
	"strconv"
	"strings"

	"mvm/object"
)

// Parser turns the textual .mvm grammar (§4.5) into an *object.Class.
// Grammar:
//
//	<file>    := <class-name> { <field> | <method> }
//	<field>   := "FIELD" <nl> ["static"] <type> <name>
//	<method>  := "METHOD" <nl> ["static"] <ret> <name> "(" [<type> {"," <type>}] ")" <locals> <nl>
//	             { <instruction> <nl> } "END"
//	<type>    := "int" | "long" | "float" | "double" | <class-name>
//	<ret>     := "void" | <type>
type Parser struct {
	in *input
}

// NewParser creates a Parser over the given class-file source text.
func NewParser(src string) *Parser {
	return &Parser{in: newInput(src)}
}

// Parse parses the whole class file into an *object.Class.
func (p *Parser) Parse() (*object.Class, error) {
	line, err := p.nextLineOrErr()
	if err != nil {
		return nil, err
	}
	className, err := p.parseClassName(line)
	if err != nil {
		return nil, err
	}

	var fields []object.Field
	var methods []object.Method

	for {
		line, ok := p.in.nextLine()
		if !ok {
			break
		}
		switch line {
		case "FIELD":
			f, err := p.parseField()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		case "METHOD":
			m, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
		default:
			return nil, p.errAt(UnknownEntry, line)
		}
	}

	return object.NewClass(className, fields, methods)
}

func (p *Parser) nextLineOrErr() (string, error) {
	line, ok := p.in.nextLine()
	if !ok {
		return "", p.errAt(UnexpectedEndOfInput, "")
	}
	return line, nil
}

func (p *Parser) errAt(kind ParseErrorKind, text string) error {
	return &ParseError{Kind: kind, Line: p.in.lineNo, Text: text}
}

func (t *tokens) nextOrErr(p *Parser) (string, error) {
	tok, ok := t.next()
	if !ok {
		return "", p.errAt(UnexpectedEndOfLine, "")
	}
	return tok, nil
}

// parseField parses a FIELD entry: ["static"] <type> <name>
func (p *Parser) parseField() (object.Field, error) {
	line, err := p.nextLineOrErr()
	if err != nil {
		return object.Field{}, err
	}
	toks := splitTokens(line)

	first, ok := toks.next()
	if !ok {
		return object.Field{}, p.errAt(InvalidFieldDefinition, line)
	}

	isStatic := false
	if first == "static" {
		isStatic = true
		first, ok = toks.next()
		if !ok {
			return object.Field{}, p.errAt(InvalidFieldDefinition, line)
		}
	}

	name, ok := toks.next()
	if !ok || toks.hasMore() {
		return object.Field{}, p.errAt(InvalidFieldDefinition, line)
	}

	typeDesc, err := p.parseTypeDesc(first)
	if err != nil {
		return object.Field{}, err
	}
	fieldName, err := p.parseFieldName(name)
	if err != nil {
		return object.Field{}, err
	}

	return object.NewField(object.NewFieldSig(typeDesc, fieldName), isStatic), nil
}

// parseMethod parses a METHOD entry: ["static"] <ret> <name> "(" params ")" <locals> then instructions until END.
func (p *Parser) parseMethod() (object.Method, error) {
	line, err := p.nextLineOrErr()
	if err != nil {
		return object.Method{}, err
	}
	toks := splitTokens(line)

	first, ok := toks.next()
	if !ok {
		return object.Method{}, p.errAt(InvalidMethodDefinition, line)
	}

	isStatic := false
	if first == "static" {
		isStatic = true
		first, ok = toks.next()
		if !ok {
			return object.Method{}, p.errAt(InvalidMethodDefinition, line)
		}
	}

	retTok := first
	nameTok, ok1 := toks.next()
	paramsTok, ok2 := toks.next()
	localsTok, ok3 := toks.next()
	if !ok1 || !ok2 || !ok3 || toks.hasMore() {
		return object.Method{}, p.errAt(InvalidMethodDefinition, line)
	}

	ret, err := p.parseReturnDesc(retTok)
	if err != nil {
		return object.Method{}, err
	}
	name, err := p.parseMethodName(nameTok)
	if err != nil {
		return object.Method{}, err
	}
	params, err := p.parseMethodParams(paramsTok)
	if err != nil {
		return object.Method{}, err
	}
	locals, err := p.parseU8(localsTok)
	if err != nil {
		return object.Method{}, err
	}

	instructions, err := p.parseInstructions()
	if err != nil {
		return object.Method{}, err
	}

	code, err := object.NewCode(int(locals), instructions)
	if err != nil {
		return object.Method{}, err
	}

	sig := object.NewMethodSig(ret, name, params)
	return object.NewMethod(sig, isStatic, code)
}

func (p *Parser) parseInstructions() ([]object.Instruction, error) {
	var instructions []object.Instruction

	for {
		line, ok := p.in.nextLine()
		if !ok {
			return nil, p.errAt(UnexpectedEndOfInput, "")
		}

		toks := splitTokens(line)
		mnemonic, err := toks.nextOrErr(p)
		if err != nil {
			return nil, err
		}
		if mnemonic == "END" {
			break
		}

		instr, err := p.parseInstruction(mnemonic, toks)
		if err != nil {
			return nil, err
		}
		if toks.hasMore() {
			return nil, p.errAt(InvalidInstructionDefinition, line)
		}
		instructions = append(instructions, instr)
	}

	return instructions, nil
}

func (p *Parser) parseClassName(s string) (string, error) {
	if err := object.ValidateClassName(s); err != nil {
		return "", p.errAt(InvalidName, s)
	}
	return s, nil
}

func (p *Parser) parseMethodName(s string) (string, error) {
	if err := object.ValidateMethodName(s); err != nil {
		return "", p.errAt(InvalidName, s)
	}
	return s, nil
}

func (p *Parser) parseFieldName(s string) (string, error) {
	if err := object.ValidateFieldName(s); err != nil {
		return "", p.errAt(InvalidName, s)
	}
	return s, nil
}

func (p *Parser) parseTypeDesc(s string) (object.TypeDesc, error) {
	if s == "" {
		return object.TypeDesc{}, p.errAt(EmptyTypeDescriptor, s)
	}
	td, err := object.ParseTypeDesc(s)
	if err != nil {
		return object.TypeDesc{}, p.errAt(InvalidTypeDescriptor, s)
	}
	return td, nil
}

func (p *Parser) parseReturnDesc(s string) (object.ReturnDesc, error) {
	if s == "" {
		return object.ReturnDesc{}, p.errAt(EmptyTypeDescriptor, s)
	}
	rd, err := object.ParseReturnDesc(s)
	if err != nil {
		return object.ReturnDesc{}, p.errAt(InvalidTypeDescriptor, s)
	}
	return rd, nil
}

// parseMethodParams parses the "(t1,t2)" descriptor token.
func (p *Parser) parseMethodParams(s string) (object.ParamsDesc, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return object.ParamsDesc{}, p.errAt(InvalidParamsDescriptor, s)
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return object.EmptyParams(), nil
	}

	parts := strings.Split(inner, ",")
	types := make([]object.TypeDesc, 0, len(parts))
	for _, part := range parts {
		td, err := p.parseTypeDesc(part)
		if err != nil {
			return object.ParamsDesc{}, err
		}
		types = append(types, td)
	}
	return object.NewParamsDesc(types), nil
}

func (p *Parser) parseU8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, p.errAt(InvalidNumber, s)
	}
	return uint8(n), nil
}

func (p *Parser) parseI8(s string) (int8, error) {
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, p.errAt(InvalidNumber, s)
	}
	return int8(n), nil
}

func (p *Parser) parseI16(s string) (int16, error) {
	n, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, p.errAt(InvalidNumber, s)
	}
	return int16(n), nil
}

// parseLdcArg parses an LDC/LDC_W argument: int preferred, float otherwise.
func (p *Parser) parseLdcArg(s string) (intVal int32, floatVal float32, isFloat bool, err error) {
	if n, e := strconv.ParseInt(s, 10, 32); e == nil {
		return int32(n), 0, false, nil
	}
	if f, e := strconv.ParseFloat(s, 32); e == nil {
		return 0, float32(f), true, nil
	}
	return 0, 0, false, p.errAt(InvalidNumber, s)
}

// parseLdc2Arg parses an LDC2_W argument: long preferred, double otherwise.
func (p *Parser) parseLdc2Arg(s string) (longVal int64, doubleVal float64, isDouble bool, err error) {
	if n, e := strconv.ParseInt(s, 10, 64); e == nil {
		return n, 0, false, nil
	}
	if f, e := strconv.ParseFloat(s, 64); e == nil {
		return 0, f, true, nil
	}
	return 0, 0, false, p.errAt(InvalidNumber, s)
}
