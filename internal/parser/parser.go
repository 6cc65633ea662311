package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/tscontext-mcp/pkg/types"
)

// DefaultMaxFileSize is the largest source file ParseFile accepts
const DefaultMaxFileSize = 4 * 1024 * 1024

// Parser reads source files and builds code models from them.
// A Parser holds no per-parse state and is safe for concurrent use.
type Parser struct {
	maxFileSize int64
}

// Option configures a Parser
type Option func(*Parser)

// WithMaxFileSize sets the size limit enforced by ParseFile. Non-positive values are ignored.
func WithMaxFileSize(bytes int64) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// New creates a new Parser instance
func New(opts ...Option) *Parser {
	p := &Parser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads, decodes and parses a source file
func (p *Parser) ParseFile(filePath string) (*types.CodeModel, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, info.Size(), p.maxFileSize)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseBytes(content)
}

// ParseBytes decodes raw file content (UTF-8 or UTF-16 with BOM) and parses it
func (p *Parser) ParseBytes(content []byte) (*types.CodeModel, error) {
	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}
	code, err := DecodeSource(content)
	if err != nil {
		return nil, err
	}
	return Parse(code)
}

// Parse builds the code model for a complete source text. It returns either the
// whole model or an error; a malformed construct anywhere aborts the parse.
func Parse(code string) (*types.CodeModel, error) {
	text, literals := ExtractQuotedStrings(code)
	text = ExpandDelimiters(text)
	text = NormalizeWhitespace(text)

	s := &state{
		cursor:   NewCursor(Tokenize(text)),
		literals: make(map[string]string, len(literals)),
	}
	for _, lit := range literals {
		s.literals[lit.Placeholder] = lit.Text
	}

	root := &types.Module{}
	if err := s.parseModules(root); err != nil {
		return nil, err
	}
	// parseModules stops at a closing brace it does not own
	if !s.cursor.Done() {
		return nil, s.cursor.AssertCurrentIs("module")
	}

	model := &types.CodeModel{
		Literals: literals,
		Modules:  root.Modules,
	}
	resolveObjectTypes(model)
	return model, nil
}

// state is the private per-parse context threaded through the grammar functions
type state struct {
	cursor   *Cursor
	literals map[string]string
}

// resolve restores literal text for placeholder tokens
func (s *state) resolve(token string) string {
	if text, ok := s.literals[token]; ok {
		return text
	}
	return token
}

func (s *state) parseModules(root *types.Module) error {
	for !s.cursor.Done() {
		if s.cursor.Peek() == "}" {
			return nil
		}
		if s.cursor.Peek() == "export" && s.cursor.PeekAt(1) == "module" {
			s.cursor.Pop()
		}
		if err := s.parseModule(root); err != nil {
			return err
		}
	}
	return nil
}

// parseModule parses one module declaration including its body and closing brace
func (s *state) parseModule(root *types.Module) error {
	if err := s.cursor.AssertCurrentIs("module"); err != nil {
		return err
	}

	module, err := s.parseNamespace(root)
	if err != nil {
		return err
	}

	if err := s.cursor.AssertCurrentIs("{"); err != nil {
		return err
	}

	for {
		switch token := s.cursor.Peek(); {
		case token == "}":
			s.cursor.Pop()
			return nil
		case token == "":
			return s.cursor.AssertCurrentIs("}")
		case token == "module":
			// nested declarations resolve from the same root
			if err := s.parseModule(root); err != nil {
				return err
			}
		case token == "export" && s.cursor.PeekAt(1) == "module":
			s.cursor.Pop()
			if err := s.parseModule(root); err != nil {
				return err
			}
		default:
			if err := s.parseClasses(module); err != nil {
				return err
			}
		}
	}
}

// parseNamespace walks the dotted path under root, reusing existing segments
func (s *state) parseNamespace(root *types.Module) (*types.Module, error) {
	if s.cursor.Done() {
		return nil, &types.SyntaxError{Expected: "module name"}
	}
	token := s.cursor.Peek()
	if isStructural(token) {
		return nil, s.cursor.fail("module name")
	}
	s.cursor.Pop()

	// a quoted module name is a single segment
	if text, ok := s.literals[token]; ok {
		return root.ChildOrCreate(text), nil
	}

	module := root
	for _, segment := range strings.Split(token, ".") {
		if segment == "" {
			return nil, &types.SyntaxError{Expected: "module name", Actual: token, Remaining: s.cursor.Remaining()}
		}
		module = module.ChildOrCreate(segment)
	}
	return module, nil
}

// parseClasses parses class declarations until a closing brace or nested module
func (s *state) parseClasses(module *types.Module) error {
	for {
		token := s.cursor.Peek()
		if token == "}" || token == "" || token == "module" {
			return nil
		}
		if token == "export" && s.cursor.PeekAt(1) == "module" {
			return nil
		}

		class := &types.Class{}
		class.IsExported = s.cursor.HasOptional("export")
		if err := s.cursor.AssertCurrentIs("class"); err != nil {
			return err
		}

		name := s.cursor.Peek()
		if name == "" || isStructural(name) {
			return s.cursor.fail("class name")
		}
		class.Name = s.resolve(s.cursor.Pop())
		module.Classes = append(module.Classes, class)

		if err := s.cursor.AssertCurrentIs("{"); err != nil {
			return err
		}
		if s.cursor.HasOptional("}") {
			continue
		}

		if err := s.parseMembers(class); err != nil {
			return err
		}

		if err := s.cursor.AssertCurrentIs("}"); err != nil {
			return err
		}
	}
}

// parseMembers alternates between field and function runs until the class closes
func (s *state) parseMembers(class *types.Class) error {
	for {
		token := s.cursor.Peek()
		if token == "}" || token == "" {
			return nil
		}

		var err error
		if s.functionAhead() {
			err = s.parseFunctions(class)
		} else {
			err = s.parseFields(class)
		}
		if err != nil {
			return err
		}
	}
}

// functionAhead reports whether the next member is a method signature
func (s *state) functionAhead() bool {
	offset := 0
	if _, ok := types.ParseAccessModifier(s.cursor.Peek()); ok {
		offset = 1
	}

	name := s.cursor.PeekAt(offset)
	if i := strings.IndexAny(name, ":=("); i >= 0 {
		return name[i] == '('
	}
	return strings.HasPrefix(s.cursor.PeekAt(offset+1), "(")
}

func (s *state) parseFields(class *types.Class) error {
	for {
		token := s.cursor.Peek()
		if token == "}" || token == "" || s.functionAhead() {
			return nil
		}
		field, err := s.parseField()
		if err != nil {
			return err
		}
		class.Fields = append(class.Fields, field)
	}
}

// parseField parses: [access] name[:type] [= value] [;]
func (s *state) parseField() (*types.Field, error) {
	field := &types.Field{Access: s.parseAccess()}

	token := s.cursor.Peek()
	if token == "" || isStructural(token) {
		return nil, s.cursor.fail("field name")
	}
	s.cursor.Pop()

	token, value, hasValue := splitInitializer(token)

	name, typeName, err := s.splitAnnotation(token)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &types.SyntaxError{Expected: "field name", Actual: token, Remaining: s.cursor.Remaining()}
	}

	if !hasValue && s.cursor.HasOptional("=") {
		hasValue = true
	}
	if hasValue && value == "" {
		next := s.cursor.Peek()
		if next == "" || isStructural(next) {
			return nil, s.cursor.fail("field value")
		}
		value = s.cursor.Pop()
	}
	if hasValue {
		field.DefaultValue = s.resolve(value)
	}

	s.cursor.HasOptional(";")

	field.Name = s.resolve(name)
	field.TypeName = typeName
	field.Type = types.ParseTypeKind(typeName)
	return field, nil
}

func (s *state) parseFunctions(class *types.Class) error {
	for {
		token := s.cursor.Peek()
		if token == "}" || token == "" || !s.functionAhead() {
			return nil
		}
		fn, err := s.parseFunction()
		if err != nil {
			return err
		}
		class.Functions = append(class.Functions, fn)
	}
}

// parseFunction parses: [access] name(args)[: type] followed by ; or a skipped { body }
func (s *state) parseFunction() (*types.Function, error) {
	fn := &types.Function{Access: s.parseAccess()}

	signature, err := s.readSignature()
	if err != nil {
		return nil, err
	}

	open := strings.IndexByte(signature, '(')
	closing := matchingParen(signature, open)
	if closing < 0 || strings.IndexByte(signature[:open], ')') >= 0 {
		return nil, &types.SyntaxError{Expected: ")", Actual: signature, Remaining: s.cursor.Remaining()}
	}

	name := signature[:open]
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &types.SyntaxError{Expected: "function name", Actual: signature, Remaining: s.cursor.Remaining()}
	}
	fn.Name = s.resolve(name)

	args, err := s.parseArguments(signature[open+1 : closing])
	if err != nil {
		return nil, err
	}
	fn.Arguments = args

	returnType, err := s.readReturnType(strings.TrimSpace(signature[closing+1:]))
	if err != nil {
		return nil, err
	}
	fn.ReturnTypeName = returnType
	fn.ReturnType = types.ParseTypeKind(returnType)

	if s.cursor.HasOptional(";") {
		return fn, nil
	}
	if s.cursor.Peek() == "{" {
		if err := s.skipBlock(); err != nil {
			return nil, err
		}
		s.cursor.HasOptional(";")
	}
	return fn, nil
}

// readSignature joins tokens until the argument list's parentheses balance
func (s *state) readSignature() (string, error) {
	token := s.cursor.Peek()
	if token == "" || isStructural(token) {
		return "", s.cursor.fail("function name")
	}
	s.cursor.Pop()

	signature := token
	for !strings.Contains(signature, "(") || parenDepth(signature) > 0 {
		next := s.cursor.Peek()
		if next == "" {
			return "", &types.SyntaxError{Expected: ")"}
		}
		if isStructural(next) {
			return "", s.cursor.fail(")")
		}
		signature += " " + s.cursor.Pop()
	}
	return signature, nil
}

// readReturnType reads the annotation following the argument list, if any
func (s *state) readReturnType(rest string) (string, error) {
	if rest == "" {
		next := s.cursor.Peek()
		if !strings.HasPrefix(next, ":") {
			return "", nil
		}
		rest = s.cursor.Pop()
	}
	if !strings.HasPrefix(rest, ":") {
		return "", &types.SyntaxError{Expected: ":", Actual: rest, Remaining: s.cursor.Remaining()}
	}

	typeName := strings.TrimSpace(rest[1:])
	if typeName == "" {
		return s.readType()
	}
	return s.continueType(typeName), nil
}

func (s *state) parseArguments(list string) ([]*types.Argument, error) {
	var args []*types.Argument
	for _, part := range splitTopLevel(list, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.TrimPrefix(part, "...")
		if i := strings.IndexByte(part, ' '); i >= 0 {
			if _, ok := types.ParseAccessModifier(part[:i]); ok {
				part = strings.TrimSpace(part[i+1:])
			}
		}
		part, _, _ = splitInitializer(part)

		if strings.Count(part, ":") > 1 {
			return nil, &types.AmbiguousAnnotationError{Token: part}
		}

		name, typeName := part, ""
		if i := strings.IndexByte(part, ':'); i >= 0 {
			name, typeName = part[:i], strings.TrimSpace(part[i+1:])
		}
		name = strings.TrimSuffix(strings.TrimSpace(name), "?")

		args = append(args, &types.Argument{
			Name:     s.resolve(name),
			Type:     types.ParseTypeKind(typeName),
			TypeName: typeName,
		})
	}
	return args, nil
}

// skipBlock consumes a brace-delimited body without interpreting it
func (s *state) skipBlock() error {
	if err := s.cursor.AssertCurrentIs("{"); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		if s.cursor.Done() {
			return &types.SyntaxError{Expected: "}"}
		}
		switch s.cursor.Pop() {
		case "{":
			depth++
		case "}":
			depth--
		}
	}
	return nil
}

// parseAccess consumes an access modifier if present, defaulting to public
func (s *state) parseAccess() types.AccessModifier {
	access, ok := types.ParseAccessModifier(s.cursor.Peek())
	if ok {
		s.cursor.Pop()
	}
	return access
}

// splitAnnotation splits name:type, reading the type from the following tokens
// when the annotation is spaced out as "name:" "type" or "name" ":" "type".
func (s *state) splitAnnotation(token string) (string, string, error) {
	switch strings.Count(token, ":") {
	case 0:
		next := s.cursor.Peek()
		if next == ":" {
			s.cursor.Pop()
			typeName, err := s.readType()
			return token, typeName, err
		}
		if strings.HasPrefix(next, ":") && !isStructural(next) {
			if strings.Count(next, ":") > 1 {
				return "", "", &types.AmbiguousAnnotationError{Token: token + next}
			}
			s.cursor.Pop()
			return token, s.continueType(next[1:]), nil
		}
		return token, "", nil
	case 1:
		i := strings.IndexByte(token, ':')
		name, typeName := token[:i], token[i+1:]
		if typeName == "" {
			t, err := s.readType()
			return name, t, err
		}
		return name, s.continueType(typeName), nil
	default:
		return "", "", &types.AmbiguousAnnotationError{Token: token}
	}
}

// readType pops a type annotation, joining tokens of a spaced generic argument list
func (s *state) readType() (string, error) {
	token := s.cursor.Peek()
	if token == "" || isStructural(token) || token == "=" {
		return "", s.cursor.fail("type annotation")
	}
	s.cursor.Pop()
	return s.continueType(token), nil
}

// continueType appends tokens until angle brackets in the annotation balance
func (s *state) continueType(typeName string) string {
	for strings.Count(typeName, "<") > strings.Count(typeName, ">") {
		next := s.cursor.Peek()
		if next == "" || isStructural(next) {
			break
		}
		typeName += " " + s.cursor.Pop()
	}
	return typeName
}

// splitInitializer separates "name=value" forms; "=>" is not an initializer
func splitInitializer(token string) (string, string, bool) {
	for i := 0; i < len(token); i++ {
		if token[i] != '=' {
			continue
		}
		if i+1 < len(token) && token[i+1] == '>' {
			i++
			continue
		}
		return strings.TrimSpace(token[:i]), strings.TrimSpace(token[i+1:]), true
	}
	return token, "", false
}

// splitTopLevel splits on sep outside of (), <> and [] nesting
func splitTopLevel(text string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '<', '[':
			depth++
		case ')', '>', ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}

func parenDepth(text string) int {
	return strings.Count(text, "(") - strings.Count(text, ")")
}

// matchingParen returns the index of the ')' closing the '(' at open, or -1
func matchingParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isStructural(token string) bool {
	return token == "{" || token == "}" || token == ";"
}
