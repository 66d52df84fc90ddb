// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// wrapBreakpoints are the characters ansi.Wrap may break after in
// addition to spaces.
const wrapBreakpoints = " ,.;-+|"

// Markdown renders ticket descriptions and summaries for the terminal.
// Soft line breaks reflow to width; fenced code blocks are highlighted
// with chroma when the styler is colored. Zero width means 80.
func Markdown(styler *Styler, input string, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	renderer := &markdownRenderer{
		styler: styler,
		source: source,
		width:  width,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

type markdownRenderer struct {
	styler *Styler
	source []byte
	width  int

	output strings.Builder
	inline strings.Builder

	// prefix is prepended to every emitted line (blockquote bars,
	// list indentation). pendingBullet replaces it on the next line.
	prefix        string
	prefixWidths  []int
	pendingBullet string

	bold          int
	italic        int
	strikethrough int

	lists []listState

	trailingNewlines int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) contentWidth() int {
	width := renderer.width - ansi.StringWidth(renderer.prefix)
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *markdownRenderer) pushPrefix(prefix string) {
	renderer.prefix += prefix
	renderer.prefixWidths = append(renderer.prefixWidths, len(prefix))
}

func (renderer *markdownRenderer) popPrefix() {
	if len(renderer.prefixWidths) == 0 {
		return
	}
	last := renderer.prefixWidths[len(renderer.prefixWidths)-1]
	renderer.prefixWidths = renderer.prefixWidths[:len(renderer.prefixWidths)-1]
	renderer.prefix = renderer.prefix[:len(renderer.prefix)-last]
}

func (renderer *markdownRenderer) tight() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

func (renderer *markdownRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		renderer.trailingNewlines += len(s)
	} else {
		renderer.trailingNewlines = len(s) - len(trimmed)
	}
}

func (renderer *markdownRenderer) newline() {
	if renderer.trailingNewlines < 1 && renderer.output.Len() > 0 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) blankLine() {
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailingNewlines < 2 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) linePrefix() string {
	if renderer.pendingBullet != "" {
		bullet := renderer.pendingBullet
		renderer.pendingBullet = ""
		return bullet
	}
	return renderer.prefix
}

// emitLines writes content with the line prefix applied to each line.
func (renderer *markdownRenderer) emitLines(content string) {
	for index, line := range strings.Split(content, "\n") {
		if index > 0 {
			renderer.write("\n")
		}
		renderer.write(renderer.linePrefix() + line)
	}
	renderer.newline()
}

func (renderer *markdownRenderer) flushParagraph() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	renderer.emitLines(ansi.Wrap(content, renderer.contentWidth(), wrapBreakpoints))
	if !renderer.tight() {
		renderer.blankLine()
	}
}

func (renderer *markdownRenderer) styled(content string) string {
	style := renderer.styler.NewStyle().Foreground(renderer.styler.theme.NormalText)
	if renderer.bold > 0 {
		style = style.Bold(true)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.strikethrough > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushParagraph()
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
			return ast.WalkContinue, nil
		}
		content := ansi.Strip(renderer.inline.String())
		renderer.inline.Reset()
		if content != "" {
			renderer.blankLine()
			renderer.emitLines(ansi.Wrap(renderer.styler.Header(content), renderer.contentWidth(), wrapBreakpoints))
			renderer.blankLine()
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.codeBlock(block.Lines(), string(block.Language(renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.codeBlock(node.Lines(), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.pushPrefix("│ ")
		} else {
			renderer.popPrefix()
			renderer.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			renderer.lists = append(renderer.lists, listState{
				ordered: list.IsOrdered(),
				counter: list.Start,
				tight:   list.IsTight,
			})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.popPrefix()
			renderer.newline()
		}

	case ast.KindThematicBreak:
		if entering {
			renderer.blankLine()
			rule := strings.Repeat("─", renderer.contentWidth())
			renderer.emitLines(renderer.styler.NewStyle().Foreground(renderer.styler.theme.BorderColor).Render(rule))
			renderer.blankLine()
		}

	case ast.KindHTMLBlock:
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styled(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &renderer.italic
		if node.(*ast.Emphasis).Level >= 2 {
			counter = &renderer.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.styler.Faint(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if !entering {
			destination := string(node.(*ast.Link).Destination)
			if destination != "" {
				renderer.inline.WriteString(" " + renderer.styler.Faint("("+destination+")"))
			}
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(renderer.source))
			renderer.inline.WriteString(renderer.styler.NewStyle().
				Foreground(renderer.styler.theme.LinkForeground).Render(url))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			renderer.inline.WriteString(renderer.styler.Faint("[image: " + string(image.Destination) + "]"))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		return ast.WalkSkipChildren, nil

	case extast.KindStrikethrough:
		if entering {
			renderer.strikethrough++
		} else {
			renderer.strikethrough--
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				renderer.inline.WriteString(renderer.styler.NewStyle().
					Foreground(renderer.styler.theme.StatusDone).Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styled("[ ] "))
			}
		}
	}
	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) enterListItem() {
	if len(renderer.lists) == 0 {
		return
	}
	list := &renderer.lists[len(renderer.lists)-1]
	bullet := "- "
	if list.ordered {
		bullet = fmt.Sprintf("%d. ", list.counter)
		list.counter++
	}
	renderer.pendingBullet = renderer.prefix + bullet
	renderer.pushPrefix(strings.Repeat(" ", len(bullet)))
}

func (renderer *markdownRenderer) codeBlock(lines *text.Segments, language string) {
	var code strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}
	renderer.blankLine()
	renderer.emitLines(strings.TrimRight(renderer.highlight(code.String(), language), "\n"))
	renderer.blankLine()
}

// highlight syntax-highlights code when the styler is colored and the
// language is known to chroma.
func (renderer *markdownRenderer) highlight(code, language string) string {
	if language == "" || !renderer.styler.Colored() {
		return renderer.faintLines(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return renderer.faintLines(code)
	}
	return buffer.String()
}

// faintLines styles each line separately so lipgloss does not pad
// short lines to the block's width.
func (renderer *markdownRenderer) faintLines(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for index, line := range lines {
		lines[index] = renderer.styler.Faint(line)
	}
	return strings.Join(lines, "\n")
}
