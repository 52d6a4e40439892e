package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"fern/internal/source"
	"fern/internal/tree"
)

// TreeNodeOutput is the serialized form of a parse tree node.
type TreeNodeOutput struct {
	Type     string           `json:"type" msgpack:"type"`
	Rule     string           `json:"rule,omitempty" msgpack:"rule,omitempty"`
	Kind     string           `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Text     string           `json:"text,omitempty" msgpack:"text,omitempty"`
	Missing  bool             `json:"missing,omitempty" msgpack:"missing,omitempty"`
	Span     source.Span      `json:"span" msgpack:"span"`
	Children []TreeNodeOutput `json:"children,omitempty" msgpack:"children,omitempty"`
}

// BuildTreeOutput converts a parse tree into its serializable form.
func BuildTreeOutput(n tree.Node) TreeNodeOutput {
	switch n := n.(type) {
	case *tree.Rule:
		out := TreeNodeOutput{Type: "rule", Rule: n.Name, Span: n.Span()}
		if len(n.Children) > 0 {
			out.Children = make([]TreeNodeOutput, 0, len(n.Children))
			for _, c := range n.Children {
				out.Children = append(out.Children, BuildTreeOutput(c))
			}
		}
		return out
	case *tree.Terminal:
		return TreeNodeOutput{
			Type:    "terminal",
			Kind:    n.Token.Kind.String(),
			Text:    n.Token.DisplayText(),
			Missing: n.Token.Missing,
			Span:    n.Token.Span,
		}
	case *tree.ErrorNode:
		return TreeNodeOutput{
			Type: "error",
			Kind: n.Token.Kind.String(),
			Text: n.Token.DisplayText(),
			Span: n.Token.Span,
		}
	default:
		return TreeNodeOutput{Type: "unknown"}
	}
}

// FormatTreeJSON выводит дерево разбора в JSON формате.
func FormatTreeJSON(w io.Writer, root tree.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(root))
}

// FormatTreeMsgpack пишет дерево разбора в MessagePack.
func FormatTreeMsgpack(w io.Writer, root tree.Node) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildTreeOutput(root))
}

// DecodeTreeMsgpack reads a tree written by FormatTreeMsgpack.
func DecodeTreeMsgpack(r io.Reader) (TreeNodeOutput, error) {
	var out TreeNodeOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return TreeNodeOutput{}, fmt.Errorf("decode tree: %w", err)
	}
	return out, nil
}

// FormatTreePretty печатает дерево с отступами и спанами.
func FormatTreePretty(w io.Writer, root tree.Node, fs *source.FileSet) error {
	if _, err := fmt.Fprintln(w, prettyLabel(root, fs)); err != nil {
		return err
	}
	r, ok := root.(*tree.Rule)
	if !ok {
		return nil
	}
	return formatChildrenPretty(w, r, fs, "")
}

func formatChildrenPretty(w io.Writer, r *tree.Rule, fs *source.FileSet, prefix string) error {
	for i, c := range r.Children {
		branch, next := "├─ ", "│  "
		if i == len(r.Children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, prettyLabel(c, fs)); err != nil {
			return err
		}
		if sub, ok := c.(*tree.Rule); ok {
			if err := formatChildrenPretty(w, sub, fs, prefix+next); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyLabel(n tree.Node, fs *source.FileSet) string {
	switch n := n.(type) {
	case *tree.Rule:
		return fmt.Sprintf("%s (span: %s)", n.Name, formatSpan(n.Span(), fs))
	case *tree.Terminal:
		if n.Token.Missing {
			return fmt.Sprintf("%s (missing)", tree.Text(n))
		}
		return fmt.Sprintf("%s %s (span: %s)", n.Token.Kind, tree.Text(n), formatSpan(n.Token.Span, fs))
	case *tree.ErrorNode:
		return fmt.Sprintf("error %s (span: %s)", tree.Text(n), formatSpan(n.Token.Span, fs))
	default:
		return "?"
	}
}
