package grammar

// Base returns the built-in Casebook grammar. Token declaration order is
// significant: the tokenizer breaks equal-length, equal-priority ties in
// favor of the earliest declaration.
func Base() *Spec {
	s := &Spec{
		Tokens: []TokenRule{
			// Keywords and operators (highest priority)
			{Name: "SCENE", Pattern: "SCENE", Literal: true, Priority: 3},
			{Name: "DO", Pattern: "DO", Literal: true, Priority: 3},
			{Name: "LET", Pattern: "LET", Literal: true, Priority: 3},
			{Name: "WHILE", Pattern: "WHILE", Literal: true, Priority: 3},
			{Name: "RETURN", Pattern: "RETURN", Literal: true, Priority: 3},
			{Name: "THEN", Pattern: "THEN", Literal: true, Priority: 3},
			{Name: "IF", Pattern: "$if", Literal: true, Priority: 3},
			{Name: "ELIF", Pattern: "$elif", Literal: true, Priority: 3},
			{Name: "ELSE", Pattern: "ELSE", Literal: true, Priority: 3},
			{Name: "FOR", Pattern: "$for", Literal: true, Priority: 3},
			{Name: "IN", Pattern: "in", Literal: true, Priority: 3},
			{Name: "TRUE", Pattern: "true", Literal: true, Priority: 3},
			{Name: "FALSE", Pattern: "false", Literal: true, Priority: 3},
			{Name: "NULL", Pattern: "null", Literal: true, Priority: 3},
			{Name: "AND", Pattern: "&&", Literal: true, Priority: 3},
			{Name: "OR", Pattern: "||", Literal: true, Priority: 3},
			{Name: "NOT", Pattern: "!", Literal: true, Priority: 3},
			{Name: "EQ", Pattern: "==", Literal: true, Priority: 3},
			{Name: "NE", Pattern: "!=", Literal: true, Priority: 3},
			{Name: "GT", Pattern: ">", Literal: true, Priority: 3},
			{Name: "LT", Pattern: "<", Literal: true, Priority: 3},
			{Name: "GE", Pattern: ">=", Literal: true, Priority: 3},
			{Name: "LE", Pattern: "<=", Literal: true, Priority: 3},

			// Punctuation
			{Name: "HASH", Pattern: "#", Literal: true, Priority: 2},
			{Name: "DOUBLE_HASH", Pattern: "##", Literal: true, Priority: 2},
			{Name: "DOLLAR", Pattern: "$", Literal: true, Priority: 2},
			{Name: "LPAREN", Pattern: "(", Literal: true, Priority: 2},
			{Name: "RPAREN", Pattern: ")", Literal: true, Priority: 2},
			{Name: "LBRACE", Pattern: "{", Literal: true, Priority: 2},
			{Name: "RBRACE", Pattern: "}", Literal: true, Priority: 2},
			{Name: "LSQB", Pattern: "[", Literal: true, Priority: 2},
			{Name: "RSQB", Pattern: "]", Literal: true, Priority: 2},
			{Name: "COLON", Pattern: ":", Literal: true, Priority: 2},
			{Name: "COMMA", Pattern: ",", Literal: true, Priority: 2},
			{Name: "EQUALS", Pattern: "=", Literal: true, Priority: 2},
			{Name: "PLUS", Pattern: "+", Literal: true, Priority: 2},
			{Name: "MINUS", Pattern: "-", Literal: true, Priority: 2},
			{Name: "TIMES", Pattern: "*", Literal: true, Priority: 2},
			{Name: "DIVIDE", Pattern: "/", Literal: true, Priority: 2},
			{Name: "TRIPLE_LT", Pattern: "<<<", Literal: true, Priority: 2},
			{Name: "TRIPLE_GT", Pattern: ">>>", Literal: true, Priority: 2},

			// Complex tokens
			{Name: "SECTION_TYPE", Pattern: `OPTIONS|SETUP|COVER|FRONT|HINTS|DOCUMENTS|LEADS|DAY_SECTION|GENERIC|END`, Priority: 2},
			{Name: "FUNCTION_NAME", Pattern: `[a-zA-Z][a-zA-Z0-9_]*(?:configure|check|get|set|is|has|find|create|update|delete|validate|process)[A-Za-z0-9_]*`, Priority: 2},
			{Name: "CHARACTER", Pattern: `[A-Z][A-Z0-9_]+(?:[ \t]+[A-Z][A-Z0-9_]+)*`, Priority: 2},
			{Name: "NUMBER", Pattern: `[0-9]+(?:\.[0-9]+)?`, Priority: 2},

			// String literals
			{Name: "DOUBLE_QUOTE_STRING", Pattern: `"(?:[^"\\\n]|\\.)*"`, Priority: 2},
			{Name: "SINGLE_QUOTE_STRING", Pattern: `'(?:[^'\\\n]|\\.)*'`, Priority: 2},
			{Name: "TRIPLE_QUOTE_STRING", Pattern: `"""(?s:.*?)"""|'''(?s:.*?)'''`, Priority: 2},
			{Name: "UNICODE_STRING", Pattern: `[“”](?:[^“”\\\n]|\\.)*[“”]`, Priority: 2},

			// Identifiers. ID_TEXT is declared ahead of IDENTIFIER so plain
			// words lex as ID_TEXT; IDENTIFIER still claims underscore-led
			// names, which ID_TEXT cannot start.
			{Name: "ID_TEXT", Pattern: `[a-zA-Z0-9][a-zA-Z0-9_./-]*`, Priority: 2},
			{Name: "IDENTIFIER", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*`, Priority: 2},

			// Comments
			{Name: "COMMENT", Pattern: `//[^\n]*`, Priority: 1},
			{Name: "BLOCK_COMMENT", Pattern: `/\*(?s:.*?)\*/`, Priority: 1},

			// Prose. TEXT keeps quote characters so words like don't never
			// fail to tokenize; well-formed string literals outrank the
			// same-length TEXT match by priority.
			{Name: "TEXT", Pattern: `[^ \t\r\n$#{}()<>/,:=\[\]+*!&|]+`},

			// Whitespace
			{Name: "WS", Pattern: `[ \t]+`},
			{Name: "NEWLINE", Pattern: `\r?\n`},
		},
		Rules: []GrammarRule{
			{Name: "start", Alternatives: [][]string{{"sections"}}},
			{Name: "sections", Alternatives: [][]string{{}, {"sections", "section"}}},
			{Name: "section", Alternatives: [][]string{{"section_header", "blocks", "child_entries"}}},
			{Name: "child_entries", Alternatives: [][]string{{}, {"child_entries", "child_entry"}}},
			{Name: "child_entry", Alternatives: [][]string{{"child_header", "blocks"}}},

			{Name: "section_header", Alternatives: [][]string{{"HASH", "section_type_opt", "section_id", "options_opt"}}},
			{Name: "child_header", Alternatives: [][]string{{"DOUBLE_HASH", "section_id", "options_opt"}}},
			{Name: "section_type_opt", Alternatives: [][]string{{}, {"SECTION_TYPE"}}},
			{Name: "section_id", Alternatives: [][]string{{"ID_TEXT"}}},
			{Name: "options_opt", Alternatives: [][]string{{}, {"LPAREN", "args_opt", "RPAREN"}}},

			{Name: "blocks", Alternatives: [][]string{{}, {"blocks", "block"}}},
			{Name: "block", Alternatives: [][]string{
				{"scene_block"}, {"action_block"}, {"character_line"}, {"function_call"},
				{"control_statement"}, {"raw_text"}, {"string"}, {"text_block"},
			}},

			{Name: "scene_block", Alternatives: [][]string{{"SCENE", "scene_name", "LBRACE", "blocks", "RBRACE"}}},
			{Name: "scene_name", Alternatives: [][]string{{"ID_TEXT"}, {"IDENTIFIER"}}},
			{Name: "action_block", Alternatives: [][]string{{"DO", "string"}}},
			{Name: "character_line", Alternatives: [][]string{{"CHARACTER", "COLON", "string"}}},

			{Name: "function_call", Alternatives: [][]string{{"DOLLAR", "func_name", "LPAREN", "args_opt", "RPAREN", "call_block_opt"}}},
			{Name: "func_name", Alternatives: [][]string{{"FUNCTION_NAME"}, {"IF"}, {"ELIF"}, {"ELSE"}, {"FOR"}}},
			{Name: "call_block_opt", Alternatives: [][]string{{}, {"COLON", "brace_block"}}},
			{Name: "brace_block", Alternatives: [][]string{{"LBRACE", "blocks", "RBRACE"}}},

			{Name: "control_statement", Alternatives: [][]string{
				{"if_statement"}, {"for_statement"}, {"while_statement"}, {"let_statement"}, {"return_statement"},
			}},
			{Name: "if_statement", Alternatives: [][]string{{"IF", "LPAREN", "expression", "RPAREN", "if_tail", "brace_block", "elif_clauses", "else_clause_opt"}}},
			{Name: "if_tail", Alternatives: [][]string{{"THEN"}, {"COLON"}}},
			{Name: "elif_clauses", Alternatives: [][]string{{}, {"elif_clauses", "elif_clause"}}},
			{Name: "elif_clause", Alternatives: [][]string{{"ELIF", "LPAREN", "expression", "RPAREN", "if_tail", "brace_block"}}},
			{Name: "else_clause_opt", Alternatives: [][]string{{}, {"ELSE", "if_tail", "brace_block"}}},
			{Name: "for_statement", Alternatives: [][]string{{"FOR", "LPAREN", "bind_name", "IN", "expression", "RPAREN", "if_tail", "brace_block"}}},
			{Name: "while_statement", Alternatives: [][]string{{"WHILE", "expression", "DO", "brace_block"}}},
			{Name: "let_statement", Alternatives: [][]string{{"LET", "bind_name", "EQUALS", "expression"}}},
			{Name: "return_statement", Alternatives: [][]string{{"RETURN", "expression"}}},
			{Name: "bind_name", Alternatives: [][]string{{"ID_TEXT"}, {"IDENTIFIER"}}},

			{Name: "args_opt", Alternatives: [][]string{{}, {"args"}}},
			{Name: "args", Alternatives: [][]string{{"arg"}, {"args", "COMMA", "arg"}}},
			{Name: "arg", Alternatives: [][]string{{"expression"}, {"name_ref", "EQUALS", "expression"}}},

			{Name: "expression", Alternatives: [][]string{{"or_expr"}}},
			{Name: "or_expr", Alternatives: [][]string{{"and_expr"}, {"or_expr", "OR", "and_expr"}}},
			{Name: "and_expr", Alternatives: [][]string{{"not_expr"}, {"and_expr", "AND", "not_expr"}}},
			{Name: "not_expr", Alternatives: [][]string{{"comparison"}, {"NOT", "not_expr"}}},
			{Name: "comparison", Alternatives: [][]string{{"sum_expr"}, {"comparison", "compare_op", "sum_expr"}}},
			{Name: "compare_op", Alternatives: [][]string{{"GE"}, {"LE"}, {"GT"}, {"LT"}, {"EQ"}, {"NE"}, {"IN"}}},
			{Name: "sum_expr", Alternatives: [][]string{{"product_expr"}, {"sum_expr", "PLUS", "product_expr"}, {"sum_expr", "MINUS", "product_expr"}}},
			{Name: "product_expr", Alternatives: [][]string{{"atom"}, {"product_expr", "TIMES", "atom"}, {"product_expr", "DIVIDE", "atom"}}},
			{Name: "atom", Alternatives: [][]string{
				{"LPAREN", "expression", "RPAREN"}, {"function_call"}, {"NUMBER"}, {"string"},
				{"name_ref"}, {"list"}, {"dict"}, {"TRUE"}, {"FALSE"}, {"NULL"},
			}},
			{Name: "name_ref", Alternatives: [][]string{{"ID_TEXT"}, {"IDENTIFIER"}, {"FUNCTION_NAME"}}},

			{Name: "list", Alternatives: [][]string{{"LSQB", "list_items_opt", "RSQB"}}},
			{Name: "list_items_opt", Alternatives: [][]string{{}, {"list_items"}}},
			{Name: "list_items", Alternatives: [][]string{{"expression"}, {"list_items", "COMMA", "expression"}}},
			{Name: "dict", Alternatives: [][]string{{"LBRACE", "dict_items_opt", "RBRACE"}}},
			{Name: "dict_items_opt", Alternatives: [][]string{{}, {"dict_items"}}},
			{Name: "dict_items", Alternatives: [][]string{{"key_value"}, {"dict_items", "COMMA", "key_value"}}},
			{Name: "key_value", Alternatives: [][]string{{"dict_key", "COLON", "expression"}}},
			{Name: "dict_key", Alternatives: [][]string{{"string"}, {"name_ref"}}},

			{Name: "string", Alternatives: [][]string{
				{"DOUBLE_QUOTE_STRING"}, {"SINGLE_QUOTE_STRING"}, {"TRIPLE_QUOTE_STRING"}, {"UNICODE_STRING"},
			}},
			{Name: "text_block", Alternatives: [][]string{
				{"TEXT"}, {"ID_TEXT"}, {"IDENTIFIER"}, {"NUMBER"}, {"CHARACTER"},
				{"FUNCTION_NAME"}, {"SECTION_TYPE"}, {"COMMA"}, {"NOT"},
				{"TRUE"}, {"FALSE"}, {"NULL"},
			}},

			{Name: "raw_text", Alternatives: [][]string{{"TRIPLE_LT", "raw_items", "TRIPLE_GT"}}},
			{Name: "raw_items", Alternatives: [][]string{{}, {"raw_items", "raw_item"}}},
		},
		Root:    RootRule,
		Ignored: []string{"WS", "NEWLINE", "COMMENT", "BLOCK_COMMENT"},
	}

	// Raw blocks accept any token stream between the fences.
	var rawAlts [][]string
	for _, t := range s.Tokens {
		if t.Name == "TRIPLE_LT" || t.Name == "TRIPLE_GT" || s.IsIgnored(t.Name) {
			continue
		}
		rawAlts = append(rawAlts, []string{t.Name})
	}
	s.Rules = append(s.Rules, GrammarRule{Name: "raw_item", Alternatives: rawAlts})
	return s
}
