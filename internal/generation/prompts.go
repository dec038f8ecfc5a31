package generation

import (
	"fmt"
	"strings"

	"github.com/agency-content/backend/internal/models"
)

// VisualMarker separates body text from the visual-recommendations
// block in generated output. The extractor splits on its first
// occurrence.
const VisualMarker = "VISUAL SUGGESTIONS:"

// VisualPlaceholder is appended when the pipeline produced no visual
// block at all.
const VisualPlaceholder = VisualMarker + "\nPair this piece with on-brand imagery: a clean hero photo or simple branded graphic that reflects the topic."

type platformTemplate struct {
	Name        string
	MaxChars    int
	MinHashtags int
	MaxHashtags int
	Guidance    string
}

var platformTemplates = map[string]platformTemplate{
	models.ContentTypeSocialInstagram: {
		Name:        "Instagram",
		MaxChars:    2200,
		MinHashtags: 8,
		MaxHashtags: 15,
		Guidance:    "Open with a scroll-stopping first line. Short paragraphs, line breaks between thoughts, end with a question or call-to-action.",
	},
	models.ContentTypeSocialTwitter: {
		Name:        "X (Twitter)",
		MaxChars:    280,
		MinHashtags: 1,
		MaxHashtags: 3,
		Guidance:    "One punchy statement or hook. Every character counts.",
	},
	models.ContentTypeSocialLinkedIn: {
		Name:        "LinkedIn",
		MaxChars:    3000,
		MinHashtags: 3,
		MaxHashtags: 5,
		Guidance:    "Professional but personal. Open with an insight or a contrarian take, develop it in 3-5 short paragraphs.",
	},
	models.ContentTypeSocialFacebook: {
		Name:        "Facebook",
		MaxChars:    0,
		MinHashtags: 1,
		MaxHashtags: 3,
		Guidance:    "Conversational and community-oriented. Invite comments.",
	},
}

func clientContext(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s\n", req.Client.Name)
	fmt.Fprintf(&b, "Industry: %s\n", req.Client.Industry)
	fmt.Fprintf(&b, "Brand voice: %s\n", req.Client.BrandVoice)
	fmt.Fprintf(&b, "Target audience: %s\n", req.Client.TargetAudience)
	if req.Client.ContentPreferences != nil && *req.Client.ContentPreferences != "" {
		fmt.Fprintf(&b, "Content preferences: %s\n", *req.Client.ContentPreferences)
	}
	if req.Tone != "" {
		fmt.Fprintf(&b, "Requested tone: %s\n", req.Tone)
	}
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords to work in: %s\n", strings.Join(req.Keywords, ", "))
	}
	return b.String()
}

func buildResearchPrompt(req Request, scraped string) string {
	var b strings.Builder
	b.WriteString("Research the following topic for a piece of marketing content.\n\n")
	b.WriteString(clientContext(req))
	fmt.Fprintf(&b, "\nTopic: %s\n\n", req.Topic)
	b.WriteString("Identify 5-7 key points worth covering, 3-5 keywords with good search volume, and any angle that would resonate with the target audience. ")
	b.WriteString("Answer with a compact research brief: topic, key points, keywords.\n")
	if scraped != "" {
		b.WriteString("\nThe client's own website says the following; use it to ground claims about their offering:\n---\n")
		b.WriteString(scraped)
		b.WriteString("\n---\n")
	}
	return b.String()
}

func buildStrategyPrompt(req Request, research string) string {
	var b strings.Builder
	b.WriteString("Turn the research below into a content brief.\n\n")
	b.WriteString(clientContext(req))
	fmt.Fprintf(&b, "\nContent type: %s\nTopic: %s\n\n", req.ContentType, req.Topic)
	b.WriteString("Produce: a working outline, tone guidance that matches the brand voice, and a plan for where each keyword should appear. Keep it under 300 words.\n")
	b.WriteString("\nResearch:\n---\n")
	b.WriteString(research)
	b.WriteString("\n---\n")
	return b.String()
}

func buildWritingPrompt(req Request, strategy string) string {
	var b strings.Builder

	if tpl, ok := platformTemplates[req.ContentType]; ok {
		fmt.Fprintf(&b, "Write a %s post following the brief below.\n\n", tpl.Name)
		b.WriteString(clientContext(req))
		fmt.Fprintf(&b, "\nTopic: %s\n\n", req.Topic)
		b.WriteString(tpl.Guidance)
		b.WriteString("\n")
		if tpl.MaxChars > 0 {
			fmt.Fprintf(&b, "Hard limit: %d characters including hashtags.\n", tpl.MaxChars)
		}
		fmt.Fprintf(&b, "Append %d-%d relevant hashtags on their own lines at the end.\n", tpl.MinHashtags, tpl.MaxHashtags)
		b.WriteString("Start with a short title line, then a blank line, then the post itself.\n")
	} else {
		fmt.Fprintf(&b, "Write the final %s following the brief below.\n\n", describeContentType(req.ContentType))
		b.WriteString(clientContext(req))
		fmt.Fprintf(&b, "\nTopic: %s\n", req.Topic)
		if req.WordCount > 0 {
			fmt.Fprintf(&b, "Target length: about %d words.\n", req.WordCount)
		}
		b.WriteString("\nStructure: a compelling title on the first line, a blank line, an engaging introduction, 2-4 subsections with clear subheadings, and a conclusion that ends in a call-to-action. ")
		b.WriteString("Incorporate the keywords naturally; never stuff them.\n")
	}

	b.WriteString("\nBrief:\n---\n")
	b.WriteString(strategy)
	b.WriteString("\n---\n")
	return b.String()
}

func buildVisualPrompt(req Request, written string) string {
	var b strings.Builder
	b.WriteString("Suggest visuals to accompany the content below: imagery style, color direction, and 2-3 concrete shot or graphic ideas that fit the brand.\n\n")
	fmt.Fprintf(&b, "Brand voice: %s\nIndustry: %s\n\n", req.Client.BrandVoice, req.Client.Industry)
	fmt.Fprintf(&b, "Start your answer with the exact line %q and keep it strictly separate from any body text.\n", VisualMarker)
	b.WriteString("\nContent:\n---\n")
	b.WriteString(written)
	b.WriteString("\n---\n")
	return b.String()
}

func buildFallbackPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete %s about %q.\n\n", describeContentType(req.ContentType), req.Topic)
	b.WriteString(clientContext(req))
	b.WriteString("\nIt should have a compelling title on the first line, a blank line, an engaging introduction, 2-4 sections, and a conclusion with a call-to-action. ")
	if req.WordCount > 0 {
		fmt.Fprintf(&b, "Aim for about %d words. ", req.WordCount)
	}
	b.WriteString("Highlight what the client offers and the benefits for the audience, work the keywords in naturally, and keep the tone consistent throughout.\n")
	return b.String()
}

func buildSuggestionsPrompt(client models.Client, n int, covered []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d content ideas for this client:\n\n", n)
	fmt.Fprintf(&b, "Industry: %s\nBrand voice: %s\nTarget audience: %s\n", client.Industry, client.BrandVoice, client.TargetAudience)
	if client.ContentPreferences != nil && *client.ContentPreferences != "" {
		fmt.Fprintf(&b, "Content preferences: %s\n", *client.ContentPreferences)
	}
	if len(covered) > 0 {
		b.WriteString("\nRecent content already covers the following topics and keywords; propose ideas that do NOT repeat them:\n")
		for _, c := range covered {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	b.WriteString("\nRespond with a JSON array; each element has the fields title, content_type (one of blog, article, social_instagram, social_facebook, social_twitter, social_linkedin, email, website), description (2-3 sentences), keywords (array), hashtags (array).\n")
	return b.String()
}

func describeContentType(contentType string) string {
	switch contentType {
	case models.ContentTypeBlog:
		return "blog post"
	case models.ContentTypeArticle:
		return "long-form article"
	case models.ContentTypeEmail:
		return "marketing email"
	case models.ContentTypeWebsite:
		return "piece of website copy"
	case models.ContentTypeContentPlan:
		return "monthly content plan"
	case models.ContentTypeStrategy:
		return "content strategy document"
	default:
		return strings.ReplaceAll(contentType, "_", " ")
	}
}
