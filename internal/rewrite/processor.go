package rewrite

import (
	"github.com/iabetor/mathspeak/internal/subcontext"
)

// Processor 是单个词表分区对外的处理接口，方法都不修改状态。
type Processor interface {
	Tag() subcontext.Tag
	DetectSubcontext(text string) subcontext.Tag
	Process(text string) string
}

type domainProcessor struct {
	a   *Applicator
	tag subcontext.Tag
}

func (p domainProcessor) Tag() subcontext.Tag { return p.tag }

func (p domainProcessor) DetectSubcontext(text string) subcontext.Tag {
	return subcontext.Detect(text)
}

// Process 固定使用本分区的词表改写文本。
func (p domainProcessor) Process(text string) string {
	out, _ := p.a.RewriteIn(text, p.tag)
	return out
}

// Processor 返回指定分区的处理器。
func (a *Applicator) Processor(tag subcontext.Tag) Processor {
	return domainProcessor{a: a, tag: tag}
}

// Processors 返回全部分区的处理器，按检测顺序排列。
func (a *Applicator) Processors() []Processor {
	tags := subcontext.Tags()
	out := make([]Processor, 0, len(tags))
	for _, t := range tags {
		out = append(out, a.Processor(t))
	}
	return out
}
