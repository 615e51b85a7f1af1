package source

import (
	"fmt"
	"strings"

	"migration-advisor/src/model"
)

// ParseFile parses one Java source file down to declaration level and returns
// the primary top-level type, or (nil, nil) when the file contains no
// recognizable top-level type declaration (package-info.java, module-info.java).
//
// Only the first top-level declaration is modeled, matching the one-public-
// type-per-file convention. Method bodies, initializers and nested types are
// skipped with balanced-token scans; their contents never reach the model.
func ParseFile(src []byte, path string) (*model.TypeDeclaration, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	// Annotations ahead of a package declaration belong to the package
	// (package-info.java), not to the type.
	pending, err := p.collectAnnotations()
	if err != nil {
		return nil, err
	}

	pkg := ""
	if p.atIdent("package") {
		pending = nil
		p.advance()
		pkg, err = p.parseQualifiedName(false)
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
	}

	var imports []string
	for p.atIdent("import") {
		p.advance()
		p.acceptIdent("static")
		imp, err := p.parseQualifiedName(true)
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}

	annots, mods, err := p.collectModifiers()
	if err != nil {
		return nil, err
	}
	annots = append(pending, annots...)

	decl, err := p.parseTypeDecl(annots, mods)
	if err != nil || decl == nil {
		return decl, err
	}

	decl.Package = pkg
	decl.QualifiedName = decl.Name
	if pkg != "" {
		decl.QualifiedName = pkg + "." + decl.Name
	}
	decl.Imports = imports
	decl.FilePath = path
	return decl, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) peek(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1 // EOF token
	}
	return p.tokens[i]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == TokenEOF
}

func (p *parser) atIdent(text string) bool {
	t := p.cur()
	return t.Kind == TokenIdent && t.Text == text
}

func (p *parser) atSymbol(text string) bool {
	t := p.cur()
	return t.Kind == TokenSymbol && t.Text == text
}

func (p *parser) acceptIdent(text string) bool {
	if p.atIdent(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptSymbol(text string) bool {
	if p.atSymbol(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectSymbol(text string) error {
	if !p.atSymbol(text) {
		return p.unexpected("%q", text)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	t := p.cur()
	if t.Kind != TokenIdent {
		return "", p.unexpected("identifier")
	}
	p.advance()
	return t.Text, nil
}

func (p *parser) unexpected(wantFormat string, args ...any) error {
	want := fmt.Sprintf(wantFormat, args...)
	t := p.cur()
	if t.Kind == TokenEOF {
		return fmt.Errorf("line %d: unexpected end of file, expected %s", t.Line, want)
	}
	return fmt.Errorf("line %d: unexpected token %q, expected %s", t.Line, t.Text, want)
}

// parseQualifiedName reads a dotted name. With wildcard set, a trailing .*
// (import form) is permitted.
func (p *parser) parseQualifiedName(wildcard bool) (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(first)
	for p.atSymbol(".") {
		p.advance()
		if wildcard && p.atSymbol("*") {
			p.advance()
			sb.WriteString(".*")
			return sb.String(), nil
		}
		seg, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		sb.WriteString(".")
		sb.WriteString(seg)
	}
	return sb.String(), nil
}

// collectAnnotations reads zero or more annotations, returning their bare
// names (last segment, parameterized forms reduce to the name alone).
// An @interface declaration is not an annotation and stops the scan.
func (p *parser) collectAnnotations() ([]string, error) {
	var names []string
	for p.atSymbol("@") {
		if p.peek(1).Kind == TokenIdent && p.peek(1).Text == "interface" {
			break
		}
		p.advance()
		name, err := p.parseQualifiedName(false)
		if err != nil {
			return nil, err
		}
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if p.atSymbol("(") {
			if err := p.skipBalanced("(", ")"); err != nil {
				return nil, err
			}
		}
		names = append(names, name)
	}
	return names, nil
}

var plainModifiers = map[string]bool{
	"public": true, "private": true, "protected": true,
	"static": true, "abstract": true, "final": true,
	"strictfp": true, "native": true, "synchronized": true,
	"transient": true, "volatile": true, "default": true,
	"sealed": true,
}

// collectModifiers reads an interleaved run of annotations and modifier
// keywords, in any order, as they appear ahead of a declaration.
func (p *parser) collectModifiers() ([]string, model.Modifiers, error) {
	var annots []string
	var mods model.Modifiers
	for {
		switch {
		case p.atSymbol("@"):
			if p.peek(1).Kind == TokenIdent && p.peek(1).Text == "interface" {
				return annots, mods, nil
			}
			more, err := p.collectAnnotations()
			if err != nil {
				return nil, mods, err
			}
			annots = append(annots, more...)

		case p.cur().Kind == TokenIdent && plainModifiers[p.cur().Text]:
			switch p.advance().Text {
			case "public":
				mods.Public = true
			case "private":
				mods.Private = true
			case "protected":
				mods.Protected = true
			case "static":
				mods.Static = true
			case "abstract":
				mods.Abstract = true
			case "final":
				mods.Final = true
			}

		case p.atIdent("non") && p.peek(1).Kind == TokenSymbol && p.peek(1).Text == "-" &&
			p.peek(2).Kind == TokenIdent && p.peek(2).Text == "sealed":
			p.advance()
			p.advance()
			p.advance()

		default:
			return annots, mods, nil
		}
	}
}

// parseTypeDecl parses a class, interface, record, enum or @interface
// declaration whose modifiers have already been consumed. Returns (nil, nil)
// when the cursor is not at a type declaration.
func (p *parser) parseTypeDecl(annots []string, mods model.Modifiers) (*model.TypeDeclaration, error) {
	var kind model.DeclKind
	switch {
	case p.acceptIdent("class"):
		kind = model.KindClass
	case p.acceptIdent("interface"):
		kind = model.KindInterface
	case p.acceptIdent("enum"):
		kind = model.KindEnum
	case p.atIdent("record") && p.peek(1).Kind == TokenIdent:
		p.advance()
		kind = model.KindRecord
	case p.atSymbol("@") && p.peek(1).Kind == TokenIdent && p.peek(1).Text == "interface":
		p.advance()
		p.advance()
		kind = model.KindInterface
	default:
		return nil, nil
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	decl := &model.TypeDeclaration{
		Name:        name,
		Kind:        kind,
		Abstract:    mods.Abstract,
		Annotations: annots,
	}

	if p.atSymbol("<") {
		if err := p.skipBalanced("<", ">"); err != nil {
			return nil, err
		}
	}

	if kind == model.KindRecord {
		comps, err := p.parseRecordComponents()
		if err != nil {
			return nil, err
		}
		decl.RecordComponents = comps
		for _, c := range comps {
			decl.Members = append(decl.Members, model.Member{
				Kind:      model.MemberField,
				Name:      c.Name,
				TypeName:  c.TypeName,
				Modifiers: model.Modifiers{Public: true, Final: true},
			})
		}
	}

	if p.acceptIdent("extends") {
		super, err := p.parseTypeText()
		if err != nil {
			return nil, err
		}
		decl.Extends = super
		// An interface may extend several superinterfaces; the first is
		// recorded as the superclass slot, the rest alongside implements.
		for p.acceptSymbol(",") {
			extra, err := p.parseTypeText()
			if err != nil {
				return nil, err
			}
			decl.Implements = append(decl.Implements, extra)
		}
	}

	if p.acceptIdent("implements") {
		for {
			ref, err := p.parseTypeText()
			if err != nil {
				return nil, err
			}
			decl.Implements = append(decl.Implements, ref)
			if !p.acceptSymbol(",") {
				break
			}
		}
	}

	if p.acceptIdent("permits") {
		for {
			if _, err := p.parseTypeText(); err != nil {
				return nil, err
			}
			if !p.acceptSymbol(",") {
				break
			}
		}
	}

	if err := p.parseBody(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *parser) parseRecordComponents() ([]model.Parameter, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var comps []model.Parameter
	for !p.atSymbol(")") {
		if _, err := p.collectAnnotations(); err != nil {
			return nil, err
		}
		typeText, err := p.parseTypeText()
		if err != nil {
			return nil, err
		}
		if p.atSymbol(".") {
			if err := p.skipVarargsDots(); err != nil {
				return nil, err
			}
			typeText += "[]"
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		comps = append(comps, model.Parameter{Name: name, TypeName: typeText})
		if !p.acceptSymbol(",") {
			break
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return comps, nil
}

// parseTypeText reads one type reference and returns its raw text, generics
// included, with array suffixes normalized to []. Type-use annotations are
// dropped.
func (p *parser) parseTypeText() (string, error) {
	if _, err := p.collectAnnotations(); err != nil {
		return "", err
	}

	var sb strings.Builder
	seg, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	sb.WriteString(seg)
	for p.atSymbol(".") && p.peek(1).Kind == TokenIdent {
		p.advance()
		seg, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		sb.WriteString(".")
		sb.WriteString(seg)
	}

	if p.atSymbol("<") {
		text, err := p.captureBalanced("<", ">")
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}

	for p.atSymbol("[") {
		p.advance()
		if err := p.expectSymbol("]"); err != nil {
			return "", err
		}
		sb.WriteString("[]")
	}
	return sb.String(), nil
}

// parseBody walks the member declarations of a type. Nested types and all
// statement-level content are skipped.
func (p *parser) parseBody(decl *model.TypeDeclaration) error {
	if err := p.expectSymbol("{"); err != nil {
		return err
	}

	if decl.Kind == model.KindEnum {
		if err := p.skipEnumConstants(); err != nil {
			return err
		}
	}

	for {
		switch {
		case p.atEOF():
			return p.unexpected("%q", "}")

		case p.atSymbol("}"):
			p.advance()
			return nil

		case p.acceptSymbol(";"):
			// stray semicolon

		default:
			if err := p.parseMember(decl); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseMember(decl *model.TypeDeclaration) error {
	_, mods, err := p.collectModifiers()
	if err != nil {
		return err
	}

	switch {
	// Nested type declarations are skipped wholesale
	case p.atIdent("class") || p.atIdent("interface") || p.atIdent("enum") ||
		(p.atIdent("record") && p.peek(1).Kind == TokenIdent),
		p.atSymbol("@") && p.peek(1).Kind == TokenIdent && p.peek(1).Text == "interface":
		return p.skipNestedType()

	// Initializer block (the static keyword, if any, was consumed above)
	case p.atSymbol("{"):
		return p.skipBalanced("{", "}")

	// Generic method type parameters
	case p.atSymbol("<"):
		if err := p.skipBalanced("<", ">"); err != nil {
			return err
		}
		return p.parseMethodOrField(decl, mods)

	default:
		return p.parseMethodOrField(decl, mods)
	}
}

func (p *parser) parseMethodOrField(decl *model.TypeDeclaration, mods model.Modifiers) error {
	// Compact record constructor: the type name followed directly by a body
	if decl.Kind == model.KindRecord && p.atIdent(decl.Name) &&
		p.peek(1).Kind == TokenSymbol && p.peek(1).Text == "{" {
		p.advance()
		decl.Members = append(decl.Members, model.Member{
			Kind:      model.MemberMethod,
			Name:      model.ConstructorName,
			Modifiers: mods,
		})
		return p.skipBalanced("{", "}")
	}

	// Constructor: the declaring type's simple name followed directly by (
	if p.atIdent(decl.Name) && p.peek(1).Kind == TokenSymbol && p.peek(1).Text == "(" {
		p.advance()
		params, err := p.parseParameters()
		if err != nil {
			return err
		}
		decl.Members = append(decl.Members, model.Member{
			Kind:       model.MemberMethod,
			Name:       model.ConstructorName,
			Parameters: params,
			Modifiers:  mods,
		})
		return p.finishMethod()
	}

	typeText, err := p.parseTypeText()
	if err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}

	if p.atSymbol("(") {
		params, err := p.parseParameters()
		if err != nil {
			return err
		}
		decl.Members = append(decl.Members, model.Member{
			Kind:       model.MemberMethod,
			Name:       name,
			TypeName:   typeText,
			Parameters: params,
			Modifiers:  mods,
		})
		return p.finishMethod()
	}

	return p.parseFieldDeclarators(decl, mods, typeText, name)
}

// parseFieldDeclarators emits one field member per declarator sharing the
// base type, in declaration order. int a, b[]; yields int a and int[] b.
func (p *parser) parseFieldDeclarators(decl *model.TypeDeclaration, mods model.Modifiers, baseType, firstName string) error {
	name := firstName
	for {
		declType := baseType
		for p.atSymbol("[") {
			p.advance()
			if err := p.expectSymbol("]"); err != nil {
				return err
			}
			declType += "[]"
		}
		decl.Members = append(decl.Members, model.Member{
			Kind:      model.MemberField,
			Name:      name,
			TypeName:  declType,
			Modifiers: mods,
		})

		if p.acceptSymbol("=") {
			if err := p.skipInitializer(); err != nil {
				return err
			}
		}

		if p.acceptSymbol(",") {
			var err error
			name, err = p.expectIdent()
			if err != nil {
				return err
			}
			continue
		}
		return p.expectSymbol(";")
	}
}

func (p *parser) parseParameters() ([]model.Parameter, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []model.Parameter
	for !p.atSymbol(")") {
		if _, err := p.collectAnnotations(); err != nil {
			return nil, err
		}
		for p.acceptIdent("final") {
		}
		typeText, err := p.parseTypeText()
		if err != nil {
			return nil, err
		}
		if p.atSymbol(".") {
			if err := p.skipVarargsDots(); err != nil {
				return nil, err
			}
			typeText += "[]"
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		for p.atSymbol("[") {
			p.advance()
			if err := p.expectSymbol("]"); err != nil {
				return nil, err
			}
			typeText += "[]"
		}
		params = append(params, model.Parameter{Name: name, TypeName: typeText})
		if !p.acceptSymbol(",") {
			break
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return params, nil
}

// finishMethod consumes everything after a method's parameter list: archaic
// trailing array brackets, the throws clause, an annotation-member default
// value, and either a body or the terminating semicolon.
func (p *parser) finishMethod() error {
	for p.atSymbol("[") {
		p.advance()
		if err := p.expectSymbol("]"); err != nil {
			return err
		}
	}

	if p.acceptIdent("throws") {
		for {
			if _, err := p.parseTypeText(); err != nil {
				return err
			}
			if !p.acceptSymbol(",") {
				break
			}
		}
	}

	if p.acceptIdent("default") {
		for !p.atSymbol(";") {
			if p.atEOF() {
				return p.unexpected("%q", ";")
			}
			if p.atSymbol("(") || p.atSymbol("{") || p.atSymbol("[") {
				open := p.cur().Text
				if err := p.skipBalanced(open, closingFor(open)); err != nil {
					return err
				}
				continue
			}
			p.advance()
		}
	}

	if p.atSymbol("{") {
		return p.skipBalanced("{", "}")
	}
	return p.expectSymbol(";")
}

// skipEnumConstants consumes the constant list at the head of an enum body,
// leaving the cursor at the first member declaration or the closing brace.
func (p *parser) skipEnumConstants() error {
	for {
		switch {
		case p.atEOF():
			return p.unexpected("enum constant")
		case p.atSymbol("}"):
			return nil // caller consumes
		case p.acceptSymbol(";"):
			return nil
		}

		if _, err := p.collectAnnotations(); err != nil {
			return err
		}
		if _, err := p.expectIdent(); err != nil {
			return err
		}
		if p.atSymbol("(") {
			if err := p.skipBalanced("(", ")"); err != nil {
				return err
			}
		}
		if p.atSymbol("{") {
			if err := p.skipBalanced("{", "}"); err != nil {
				return err
			}
		}
		p.acceptSymbol(",")
	}
}

func (p *parser) skipNestedType() error {
	if p.atSymbol("@") {
		p.advance() // @interface form
	}
	p.advance() // kind keyword
	if _, err := p.expectIdent(); err != nil {
		return err
	}
	// Header: generics, record components, extends, implements, permits.
	// None of these contain braces, so scan forward to the body.
	for !p.atSymbol("{") {
		if p.atEOF() {
			return p.unexpected("%q", "{")
		}
		if p.atSymbol("(") || p.atSymbol("<") {
			open := p.cur().Text
			if err := p.skipBalanced(open, closingFor(open)); err != nil {
				return err
			}
			continue
		}
		p.advance()
	}
	return p.skipBalanced("{", "}")
}

// skipInitializer consumes a field initializer expression up to, but not
// including, the comma or semicolon that ends it. Parentheses, braces and
// brackets nest. Angle brackets are counted only while the token run still
// looks like generic type arguments (new HashMap<String, Integer>()); the
// first token that cannot occur inside type arguments reverts any pending <
// to plain comparison operators, so x < y stays an expression.
func (p *parser) skipInitializer() error {
	depth := 0
	angles := 0
	for {
		t := p.cur()
		if t.Kind == TokenEOF {
			return p.unexpected("end of initializer")
		}
		if angles > 0 && !typeArgToken(t) {
			angles = 0
		}
		if t.Kind == TokenSymbol {
			switch t.Text {
			case "(", "{", "[":
				depth++
			case ")", "}", "]":
				if depth == 0 {
					return p.unexpected("%q or %q", ",", ";")
				}
				depth--
			case "<":
				angles++
			case ">":
				if angles > 0 {
					angles--
				}
			case ",", ";":
				if depth == 0 && angles == 0 {
					return nil
				}
			}
		}
		p.advance()
	}
}

// typeArgToken reports whether a token can occur inside generic type
// arguments: type names, dots, commas, wildcards, bounds and nesting.
func typeArgToken(t Token) bool {
	if t.Kind == TokenIdent {
		return true
	}
	if t.Kind != TokenSymbol {
		return false
	}
	switch t.Text {
	case ".", ",", "?", "&", "<", ">", "[", "]":
		return true
	}
	return false
}

// skipBalanced consumes a balanced token run from the opening delimiter at
// the cursor through its matching close.
func (p *parser) skipBalanced(open, close string) error {
	_, err := p.balanced(open, close, false)
	return err
}

// captureBalanced is skipBalanced but returns the consumed text, delimiters
// included.
func (p *parser) captureBalanced(open, close string) (string, error) {
	return p.balanced(open, close, true)
}

func (p *parser) balanced(open, close string, capture bool) (string, error) {
	if !p.atSymbol(open) {
		return "", p.unexpected("%q", open)
	}
	var sb strings.Builder
	depth := 0
	for {
		t := p.cur()
		if t.Kind == TokenEOF {
			return "", p.unexpected("%q", close)
		}
		if capture {
			writeTokenText(&sb, t)
		}
		p.advance()
		if t.Kind == TokenSymbol {
			switch t.Text {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return sb.String(), nil
				}
			}
		}
	}
}

// skipVarargsDots consumes the three dots of a varargs ellipsis
func (p *parser) skipVarargsDots() error {
	for i := 0; i < 3; i++ {
		if err := p.expectSymbol("."); err != nil {
			return err
		}
	}
	return nil
}

func writeTokenText(sb *strings.Builder, t Token) {
	switch t.Kind {
	case TokenString:
		sb.WriteString(`"` + t.Text + `"`)
	default:
		sb.WriteString(t.Text)
	}
}

func closingFor(open string) string {
	switch open {
	case "(":
		return ")"
	case "{":
		return "}"
	case "[":
		return "]"
	case "<":
		return ">"
	}
	return ""
}
