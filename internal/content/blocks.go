package content

import (
	"math"
	"strings"
)

// Kind is the type of an article block.
type Kind int

const (
	Paragraph Kind = iota
	Heading2
	Heading3
)

func (k Kind) String() string {
	switch k {
	case Heading2:
		return "h2"
	case Heading3:
		return "h3"
	default:
		return "p"
	}
}

// Block is one rendered unit of an article body.
type Block struct {
	Kind Kind
	Text string
}

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// Parse splits an article body on blank lines. Blocks starting with "## "
// or "### " become headings; everything else is a paragraph. Blank blocks
// are dropped.
func Parse(body string) []Block {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}

	var blocks []Block
	for _, chunk := range strings.Split(body, "\n\n") {
		text := strings.TrimSpace(chunk)
		if text == "" {
			continue
		}
		switch {
		case strings.HasPrefix(text, "### "):
			blocks = append(blocks, Block{Kind: Heading3, Text: strings.TrimSpace(text[4:])})
		case strings.HasPrefix(text, "## "):
			blocks = append(blocks, Block{Kind: Heading2, Text: strings.TrimSpace(text[3:])})
		default:
			blocks = append(blocks, Block{Kind: Paragraph, Text: text})
		}
	}
	return blocks
}

// WordCount counts whitespace-separated words.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// ReadingMinutes estimates read time, never less than one minute.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 1
	}
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
