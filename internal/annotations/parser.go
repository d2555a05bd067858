package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/fielder/internal/errors"
)

// Parser parses //fielder:: annotation comments using alecthomas/participle
type Parser struct {
	parser *participle.Parser[markerLine]
}

// markerLine is the participle grammar root for one annotation comment
type markerLine struct {
	Comment   string   `parser:"@Comment"`
	Fielder   string   `parser:"@Fielder"`
	Separator string   `parser:"@Separator"`
	Type      string   `parser:"@Ident"`
	Items     []*param `parser:"@@*"`
}

// param is a -Key or -Key=Value item following the annotation type
type param struct {
	Name  string  `parser:"Dash @Ident"`
	Value *string `parser:"(Equals @(String | Ident | Number))?"`
}

// knownParameters maps each annotation type to its accepted parameter names
var knownParameters = map[AnnotationType]map[string]bool{
	FieldableAnnotation: {
		"Debuggable": true,
	},
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Fielder", Pattern: `fielder`},
		{Name: "Separator", Pattern: `::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[markerLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// IsAnnotation reports whether a comment line carries a fielder annotation
func IsAnnotation(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), Prefix)
}

// Parse parses one annotation comment into its structured form
func (p *Parser) Parse(comment string, location errors.SourceLocation) (*ParsedAnnotation, error) {
	line, err := p.parser.ParseString(location.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.NewSyntaxError(
			fmt.Sprintf("malformed fielder annotation '%s': %v", comment, err), location)
	}

	annotationType, err := p.parseAnnotationType(line.Type, location)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]string),
		Flags:      make(map[string]bool),
		Location:   location,
		Raw:        comment,
	}

	known := knownParameters[annotationType]
	for _, item := range line.Items {
		if !known[item.Name] {
			return nil, errors.NewSyntaxError(
				fmt.Sprintf("unknown parameter '-%s' on //fielder::%s", item.Name, annotationType), location).
				WithContext("parameter", item.Name).
				WithSuggestions(fmt.Sprintf("Supported parameters: %s", strings.Join(parameterNames(known), ", ")))
		}
		if item.Value == nil {
			parsed.Flags[item.Name] = true
			continue
		}
		parsed.Parameters[item.Name] = unquote(*item.Value)
	}

	return parsed, nil
}

// parseAnnotationType converts the annotation keyword to its type
func (p *Parser) parseAnnotationType(keyword string, location errors.SourceLocation) (AnnotationType, error) {
	switch keyword {
	case "fieldable":
		return FieldableAnnotation, nil
	default:
		return 0, errors.NewSyntaxError(
			fmt.Sprintf("unknown annotation type '%s'", keyword), location).
			WithSuggestions("Supported annotations: //fielder::fieldable")
	}
}

func parameterNames(known map[string]bool) []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	return names
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		inner := value[1 : len(value)-1]
		return strings.ReplaceAll(inner, `\"`, `"`)
	}
	return value
}
