// Package md2wechat writes, illustrates and styles articles for WeChat
// Official Accounts.
//
// # Quick Start
//
// Render an existing document with the classic theme:
//
//	conv, err := md2wechat.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2wechat.Input{
//	    Markdown: "# 标题\n\n**重点**内容\n\n((IMG: 茶室))",
//	    Images:   map[string]string{"茶室": "https://cdn.example.com/tea.jpg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// Every element in result.HTML carries its own style attribute, so the
// markup survives being pasted into the platform editor, which drops
// style sheets and classes. result.PlainText is the text-only fallback.
//
// # Rendering Stages
//
// A document goes through four ordered stages:
//
//  1. Escaping of &, < and > in the source text
//  2. Inline tokens: image directives, headings, bold, blockquotes and
//     【核心提示：…】 highlight boxes
//  3. Pipe tables
//  4. Paragraph wrapping of the remaining lines
//
// The grammar is deliberately small: there is no nesting, no lists and no
// code blocks. Image directives look like ((IMG: description)) and resolve
// through Input.Images by their trimmed description; unresolved ones render
// as a visible placeholder and are listed in ConvertResult.Missing.
//
// # Themes
//
// A Theme maps sixteen semantic roles to inline CSS. Built-in themes are
// classic, jade and ink; custom themes are YAML files:
//
//	name: brand
//	styles:
//	  heading2: "font-size: 20px; color: #c0392b;"
//	  strongText: "color: #c0392b; font-weight: bold;"
//
// Roles a file omits keep their classic value. Load them with
// WithThemeName together with WithAssetPath, or parse them with ParseTheme.
//
// # Generating Articles
//
// Studio drives the whole flow with a TextGenerator and an ImageGenerator
// (internal/gemini provides both on top of the Gemini API):
//
//	studio, err := md2wechat.NewStudio(textGen, imageGen,
//	    md2wechat.WithProgress(func(p md2wechat.Progress) { log.Println(p.Message) }),
//	)
//	article, err := studio.Generate(ctx, md2wechat.Request{
//	    Topic: "冬天吃肉，怎么吃才能真正暖身又不长胖？",
//	    Style: md2wechat.StyleTCM,
//	})
//
// Images are requested one at a time with a pause between requests, since
// image backends enforce tight per-minute quotas. Rate-limited requests are
// retried after a growing wait; images that still fail are replaced by
// PlaceholderImageURL and generation continues.
//
// # Preview
//
// Set Input.Preview to also print a phone-width PDF of the article through
// headless Chrome (go-rod). Rod downloads a managed Chromium on first run.
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2wechat
