// Package card renders a parsed fortune as a standalone HTML page in the
// style of a paper temple slip.
package card

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/randomtoy/sensoji-go/internal/domain"
)

const (
	Title          = "浅草寺观音签"
	ExplainHeading = "解曰"
	NotesHeading   = "仙机"
	Footer         = "Cyber Sensoji | 诚心祈愿"
)

const style = `body{margin:0;padding:20px;background-color:transparent;font-family:"SimSun","Songti SC","Noto Serif SC",serif}
.container{width:375px;background-color:#fffdf5;border:2px solid #333;padding:25px;box-sizing:border-box;box-shadow:5px 5px 15px rgba(0,0,0,.2);margin:0 auto}
.inner-border{border:1px solid #8b0000;padding:15px}
.header{text-align:center;font-size:14px;color:#555;margin-bottom:10px;letter-spacing:2px}
.result{text-align:center;font-size:48px;font-weight:bold;color:#d32f2f;margin:10px 0 20px;font-family:"KaiTi","楷体",serif;border-bottom:2px solid #333;padding-bottom:15px}
.poem-box{text-align:center;margin:20px 0;padding:15px;background-color:#fff;border:1px solid #ccc}
.poem-line{font-size:22px;margin:8px 0;letter-spacing:2px;color:#000;font-weight:600}
.section-title{font-weight:bold;font-size:16px;margin:20px 0 5px;color:#8b0000;border-left:4px solid #8b0000;padding-left:8px}
.subtitle{font-weight:bold;font-size:14px;color:#333;margin-top:8px}
.explanation{font-size:14px;color:#444;line-height:1.6;margin-bottom:10px;text-align:justify}
.item-list{margin-top:15px;border-top:1px dashed #aaa;padding-top:15px}
.item{font-size:14px;margin-bottom:6px;line-height:1.4}
.item-label{font-weight:bold;color:#333}
.footer{text-align:center;margin-top:30px;font-size:12px;color:#999}`

// Page returns the full HTML document for o.
func Page(o domain.ParsedOracle) templ.Component {
	return join(
		raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+Title+`</title><style>`+style+`</style></head><body>`),
		Body(o),
		raw(`</body></html>`),
	)
}

// Body returns the card markup without the surrounding document.
func Body(o domain.ParsedOracle) templ.Component {
	parts := []templ.Component{
		raw(`<div class="container"><div class="inner-border">`),
		div("header", Title),
		div("result", o.Verdict),
		Poem(o.PoemLines),
	}
	if len(o.ExplanationBlocks) > 0 {
		parts = append(parts, div("section-title", ExplainHeading))
		for _, blk := range o.ExplanationBlocks {
			parts = append(parts, Block(blk))
		}
	}
	if len(o.Annotations) > 0 {
		parts = append(parts, div("section-title", NotesHeading), raw(`<div class="item-list">`))
		for _, a := range o.Annotations {
			parts = append(parts, Item(a))
		}
		parts = append(parts, raw(`</div>`))
	}
	parts = append(parts, div("footer", Footer), raw(`</div></div>`))
	return join(parts...)
}

// Poem renders the four verse lines.
func Poem(lines [4]string) templ.Component {
	parts := []templ.Component{raw(`<div class="poem-box">`)}
	for _, line := range lines {
		parts = append(parts, div("poem-line", line))
	}
	return join(append(parts, raw(`</div>`))...)
}

// Block renders one explanation paragraph with its optional subtitle.
func Block(b domain.ExplanationBlock) templ.Component {
	if b.Subtitle == "" {
		return div("explanation", b.Body)
	}
	return join(div("subtitle", b.Subtitle), div("explanation", b.Body))
}

// Item renders one annotation as "key：value".
func Item(a domain.Annotation) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="item"><span class="item-label">%s%s</span>%s</div>`,
			templ.EscapeString(a.Key), domain.AnnotationSeparator, templ.EscapeString(a.Value))
		return err
	})
}

func div(class, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="%s">%s</div>`, class, templ.EscapeString(text))
		return err
	})
}

func raw(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// HTML renders the full page to a string.
func HTML(ctx context.Context, o domain.ParsedOracle) (string, error) {
	var b bytes.Buffer
	if err := Page(o).Render(ctx, &b); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	return b.String(), nil
}
