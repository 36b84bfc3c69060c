package maml

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
)

// description builds a maml:description for kind ("synopsis",
// "description", "inputType") from a fragment. An embedded
// maml:description of that type wins; otherwise the para elements of that
// type are collected in document order.
func (g *Generator) description(member comments.Member, fragment *etree.Element, kind string) *etree.Element {
	if desc := findDescription(fragment, kind); desc != nil {
		return desc
	}
	g.report(member, fmt.Sprintf("No %s comment found.", kind))
	return nil
}

// findDescription is description without the warning.
func findDescription(fragment *etree.Element, kind string) *etree.Element {
	if fragment == nil {
		return nil
	}
	if embedded := firstDescendant(fragment, typed(qualified(MamlNS, "description"), kind)); embedded != nil {
		return adopt(embedded, false)
	}
	paras := descendants(fragment, typed(plain("para"), kind))
	if len(paras) == 0 {
		return nil
	}
	desc := etree.NewElement("maml:description")
	for _, para := range paras {
		desc.AddChild(textElement("maml:para", Tidy(comments.InnerText(para))))
	}
	return desc
}

// alertSet copies an embedded maml:alertSet, or builds one from the items of
// a <list type="alertSet">.
func (g *Generator) alertSet(fragment *etree.Element) *etree.Element {
	if fragment == nil {
		return nil
	}
	if embedded := firstDescendant(fragment, qualified(MamlNS, "alertSet")); embedded != nil {
		return adopt(embedded, true)
	}
	list := firstDescendant(fragment, typed(plain("list"), "alertSet"))
	if list == nil {
		return nil
	}
	set := etree.NewElement("maml:alertSet")
	for _, item := range children(list, plain("item")) {
		term := item.SelectElement("term")
		desc := item.SelectElement("description")
		if term == nil || desc == nil {
			continue
		}
		set.AddChild(textElement("maml:title", Tidy(comments.InnerText(term))))
		alert := set.CreateElement("maml:alert")
		paras := children(desc, plain("para"))
		if len(paras) == 0 {
			alert.AddChild(textElement("maml:para", Tidy(comments.InnerText(desc))))
		}
		for _, para := range paras {
			alert.AddChild(textElement("maml:para", Tidy(comments.InnerText(para))))
		}
	}
	return set
}

// examples builds command:examples from the <example> elements of a
// fragment. Examples without para or code children are reported and left
// out of the numbering.
func (g *Generator) examples(member comments.Member, fragment *etree.Element) *etree.Element {
	if fragment == nil {
		return nil
	}
	out := etree.NewElement("command:examples")
	n := 0
	for _, example := range descendants(fragment, plain("example")) {
		items := children(example, func(e *etree.Element) bool {
			return plain("para")(e) || plain("code")(e)
		})
		if len(items) == 0 {
			g.report(member, fmt.Sprintf("No para or code elements found for example %d.", n+1))
			continue
		}
		n++
		out.AddChild(exampleElement(n, items))
	}
	if n == 0 {
		return nil
	}
	return out
}

// exampleElement splits items into leading paras (the introduction), the
// first code block and whatever follows (the remarks).
func exampleElement(n int, items []*etree.Element) *etree.Element {
	i := 0
	var intro []*etree.Element
	for ; i < len(items) && items[i].Tag == "para"; i++ {
		intro = append(intro, items[i])
	}
	var code *etree.Element
	for ; i < len(items) && items[i].Tag == "code"; i++ {
		if code == nil {
			code = items[i]
		}
	}
	remarks := items[i:]

	e := etree.NewElement("command:example")
	e.AddChild(textElement("maml:title", fmt.Sprintf("----------  EXAMPLE %d  ----------", n)))
	if len(intro) > 0 {
		introduction := e.CreateElement("maml:introduction")
		for _, para := range intro {
			introduction.AddChild(textElement("maml:para", Tidy(comments.InnerText(para))))
		}
	}
	if code != nil {
		e.AddChild(textElement("dev:code", TidyCode(comments.InnerText(code))))
	}
	if len(remarks) > 0 {
		r := e.CreateElement("dev:remarks")
		for _, para := range remarks {
			r.AddChild(textElement("maml:para", Tidy(comments.InnerText(para))))
		}
	}
	return e
}

// relatedLinks builds maml:relatedLinks from every <para type="link">.
func (g *Generator) relatedLinks(fragment *etree.Element) *etree.Element {
	if fragment == nil {
		return nil
	}
	paras := descendants(fragment, typed(plain("para"), "link"))
	if len(paras) == 0 {
		return nil
	}
	links := etree.NewElement("maml:relatedLinks")
	for _, para := range paras {
		link := links.CreateElement("maml:navigationLink")
		link.AddChild(textElement("maml:linkText", Tidy(comments.InnerText(para))))
		if uri := para.SelectAttrValue("uri", ""); uri != "" {
			link.AddChild(textElement("maml:uri", uri))
		}
	}
	return links
}
