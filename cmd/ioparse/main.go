// ioparse - Internet Object CLI tool
//
// Usage:
//
//	ioparse parse [file]              Parse a document, print its tree as JSON
//	ioparse validate --schema=S [file] Parse and validate a document against a schema file
//	ioparse version                    Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	ioformat "github.com/internet-object/go-io/io"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var input io.Reader = os.Stdin
	schemaPath := ""
	fileArg := ""

	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--schema="):
			schemaPath = strings.TrimPrefix(arg, "--schema=")
		case !strings.HasPrefix(arg, "-") && arg != "-":
			fileArg = arg
		}
	}

	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "parse":
		cmdParse(input)
	case "validate":
		if schemaPath == "" {
			fatal("validate: missing --schema=<file>")
		}
		cmdValidate(input, schemaPath)
	case "version", "-v", "--version":
		fmt.Printf("ioparse %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `ioparse - Internet Object CLI tool

Usage:
  ioparse parse [file]               Parse a document, print its tree as JSON
  ioparse validate --schema=S [file] Parse and validate a document against a schema file
  ioparse version                    Print version info

If no file is given, reads from stdin.

Examples:
  echo '{a: 1, b: "hi"}' | ioparse parse
  ioparse validate --schema=person.ioschema person.io
`)
}

func cmdParse(r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}

	node, err := ioformat.ParseDocument(string(data))
	if err != nil {
		fatal("parse: %v", err)
	}

	out, err := json.MarshalIndent(nodeToJSON(node), "", "  ")
	if err != nil {
		fatal("encode result: %v", err)
	}
	fmt.Println(string(out))
}

func cmdValidate(r io.Reader, schemaPath string) {
	schemaText, err := os.ReadFile(schemaPath)
	if err != nil {
		fatal("read schema: %v", err)
	}
	schemaNode, err := ioformat.ParseDocument(string(schemaText))
	if err != nil {
		fatal("parse schema: %v", err)
	}
	schema, err := ioformat.ParseSchema(schemaNode)
	if err != nil {
		fatal("build schema: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	docNode, err := ioformat.ParseDocument(string(data))
	if err != nil {
		fatal("parse document: %v", err)
	}

	objDef := &ioformat.MemberDef{Type: "object", Path: "$", Object: schema}
	value, err := ioformat.ParseMember(docNode, objDef, nil)
	if err != nil {
		fatal("validate: %v", err)
	}

	entries, _ := value.AsObject()
	out, err := json.MarshalIndent(objectValueToJSON(entries), "", "  ")
	if err != nil {
		fatal("encode result: %v", err)
	}
	fmt.Println(string(out))
}

// nodeToJSON renders a raw parser-tree Node as a JSON-friendly value
// for inspection, independent of any schema.
func nodeToJSON(n ioformat.Node) any {
	switch v := n.(type) {
	case *ioformat.ObjectNode:
		out := make(map[string]any, len(v.Children))
		positional := make([]any, 0, len(v.Children))
		named := false
		for _, c := range v.Children {
			if kv, ok := c.(*ioformat.KeyValue); ok {
				named = true
				out[kv.Key] = nodeToJSON(kv.Value)
				continue
			}
			positional = append(positional, nodeToJSON(c))
		}
		if named {
			return out
		}
		return positional
	case *ioformat.ArrayNode:
		out := make([]any, len(v.Children))
		for i, c := range v.Children {
			out[i] = nodeToJSON(c)
		}
		return out
	case *ioformat.Token:
		return tokenValueToJSON(v.Value)
	default:
		return nil
	}
}

func tokenValueToJSON(v ioformat.Value) any {
	switch v.Kind() {
	case ioformat.KindNull, ioformat.KindUndefined:
		return nil
	case ioformat.KindBool:
		b, _ := v.AsBool()
		return b
	case ioformat.KindString:
		s, _ := v.AsString()
		return s
	case ioformat.KindFloat:
		f, _ := v.AsFloat()
		return f
	case ioformat.KindInt:
		bi, _ := v.AsBigInt()
		return bi.String()
	case ioformat.KindBytes:
		b, _ := v.AsBytes()
		return b
	default:
		return v.String()
	}
}

func objectValueToJSON(entries []ioformat.KeyedValue) map[string]any {
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[e.Key] = validatedValueToJSON(e.Value)
	}
	return out
}

func validatedValueToJSON(v ioformat.Value) any {
	switch v.Kind() {
	case ioformat.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = validatedValueToJSON(e)
		}
		return out
	case ioformat.KindObject:
		entries, _ := v.AsObject()
		return objectValueToJSON(entries)
	default:
		return tokenValueToJSON(v)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ioparse: "+format+"\n", args...)
	os.Exit(1)
}
