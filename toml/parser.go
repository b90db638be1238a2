package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser turns config source into nested maps
// Tables become map[string]any, arrays of tables []map[string]any, arrays []any
type Parser struct {
	lex   *lexer
	cur   token
	peek  token
	root  map[string]any
	scope map[string]any
}

// NewParser creates a parser over data
func NewParser(data []byte) *Parser {
	p := &Parser{lex: newLexer(data), root: make(map[string]any)}
	p.scope = p.root
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.next()
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.kind != tokEOF {
		var err error
		switch p.cur.kind {
		case tokNewline:
			p.advance()
			continue
		case tokLBracket:
			err = p.header()
		case tokWord, tokString:
			err = p.keyValue(p.scope)
		case tokError:
			err = fmt.Errorf("line %d: %s", p.cur.line, p.cur.text)
		default:
			err = fmt.Errorf("line %d: unexpected %s", p.cur.line, p.cur)
		}
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokNewline && p.cur.kind != tokEOF {
			return nil, fmt.Errorf("line %d: expected end of line, got %s", p.cur.line, p.cur)
		}
	}
	return p.root, nil
}

// header handles [table] and [[array.of.tables]]
func (p *Parser) header() error {
	line := p.cur.line
	p.advance()
	array := false
	if p.cur.kind == tokLBracket {
		array = true
		p.advance()
	}

	path, err := p.key()
	if err != nil {
		return err
	}
	closers := 1
	if array {
		closers = 2
	}
	for range closers {
		if p.cur.kind != tokRBracket {
			return fmt.Errorf("line %d: unclosed table header", line)
		}
		p.advance()
	}

	table := p.root
	for _, k := range path[:len(path)-1] {
		if table, err = descend(table, k); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	last := path[len(path)-1]

	if array {
		existing, _ := table[last].([]map[string]any)
		if _, taken := table[last]; taken && existing == nil {
			return fmt.Errorf("line %d: %s is not an array of tables", line, last)
		}
		p.scope = make(map[string]any)
		table[last] = append(existing, p.scope)
		return nil
	}

	if p.scope, err = descend(table, last); err != nil {
		return fmt.Errorf("line %d: %w", line, err)
	}
	return nil
}

// descend returns the sub-table k, creating it when absent
// An array of tables resolves to its latest element
func descend(table map[string]any, k string) (map[string]any, error) {
	switch v := table[k].(type) {
	case nil:
		sub := make(map[string]any)
		table[k] = sub
		return sub, nil
	case map[string]any:
		return v, nil
	case []map[string]any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s is an empty array of tables", k)
		}
		return v[len(v)-1], nil
	default:
		return nil, fmt.Errorf("%s is not a table", k)
	}
}

func (p *Parser) key() ([]string, error) {
	var path []string
	for {
		if p.cur.kind != tokWord && p.cur.kind != tokString {
			return nil, fmt.Errorf("line %d: expected key, got %s", p.cur.line, p.cur)
		}
		path = append(path, p.cur.text)
		p.advance()
		if p.cur.kind != tokDot {
			return path, nil
		}
		p.advance()
	}
}

func (p *Parser) keyValue(table map[string]any) error {
	line := p.cur.line
	path, err := p.key()
	if err != nil {
		return err
	}
	if p.cur.kind != tokEqual {
		return fmt.Errorf("line %d: expected '=' after %s", line, strings.Join(path, "."))
	}
	p.advance()

	val, err := p.value()
	if err != nil {
		return err
	}

	for _, k := range path[:len(path)-1] {
		if table, err = descend(table, k); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	last := path[len(path)-1]
	if _, dup := table[last]; dup {
		return fmt.Errorf("line %d: duplicate key %s", line, last)
	}
	table[last] = val
	return nil
}

func (p *Parser) value() (any, error) {
	tok := p.cur
	switch tok.kind {
	case tokString:
		p.advance()
		return tok.text, nil
	case tokWord:
		p.advance()
		return scalar(tok)
	case tokLBracket:
		return p.array()
	case tokLBrace:
		return p.inlineTable()
	}
	return nil, fmt.Errorf("line %d: expected value, got %s", tok.line, tok)
}

// scalar classifies a bare word in value position
func scalar(tok token) (any, error) {
	switch tok.text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	text := strings.ReplaceAll(tok.text, "_", "")
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return int(i), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("line %d: invalid value %q", tok.line, tok.text)
}

func (p *Parser) skipNewlines() {
	for p.cur.kind == tokNewline {
		p.advance()
	}
}

func (p *Parser) array() ([]any, error) {
	line := p.cur.line
	p.advance()
	arr := make([]any, 0)
	for {
		p.skipNewlines()
		if p.cur.kind == tokRBracket {
			p.advance()
			return arr, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		p.skipNewlines()
		switch p.cur.kind {
		case tokComma:
			p.advance()
		case tokRBracket:
		default:
			return nil, fmt.Errorf("line %d: unterminated array", line)
		}
	}
}

func (p *Parser) inlineTable() (map[string]any, error) {
	line := p.cur.line
	p.advance()
	table := make(map[string]any)
	for p.cur.kind != tokRBrace {
		if err := p.keyValue(table); err != nil {
			return nil, err
		}
		switch p.cur.kind {
		case tokComma:
			p.advance()
		case tokRBrace:
		default:
			return nil, fmt.Errorf("line %d: unterminated inline table", line)
		}
	}
	p.advance()
	return table, nil
}

// ParseValue parses a single value written as it would appear after '='
func ParseValue(src string) (any, error) {
	tree, err := NewParser([]byte("v = " + src)).Parse()
	if err != nil {
		return nil, err
	}
	return tree["v"], nil
}
