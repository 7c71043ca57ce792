// Package prompt builds the persona-driven prompts sent to the text and
// image models.
package prompt

import (
	"fmt"
	"strings"
)

// Persona keys, in display order.
const (
	StyleTCM         = "中医科普风"
	StyleAuthority   = "权威科普风"
	StyleEmotional   = "情感共鸣风"
	StyleTutorial    = "干货教程风"
	StyleLifestyle   = "小红书种草风"
	StyleHumor       = "幽默吐槽风"
	StyleBusiness    = "商业分析风"
	StyleMotivation  = "鸡汤励志风"
	DefaultStyle     = StyleTCM
	genericStyleDesc = "通用风格"
)

// Word count bounds accepted by ArticlePrompt callers.
const (
	MinWordCount     = 1000
	MaxWordCount     = 3000
	DefaultWordCount = 1750
)

// Aspect ratios for generated images.
const (
	CoverAspectRatio = "16:9"
	BodyAspectRatio  = "4:3"
)

var styleOrder = []string{
	StyleTCM,
	StyleAuthority,
	StyleEmotional,
	StyleTutorial,
	StyleLifestyle,
	StyleHumor,
	StyleBusiness,
	StyleMotivation,
}

var personas = map[string]string{
	StyleTCM: "身份设定：受聘于《人民日报健康客户端》或《生命时报》特约专栏的资深中医专家。你的文字需要兼具“国家级媒体的权威感”与“服务大众的亲和力”。" +
		"写作视角：不再局限于诊室的一亩三分地，而是站在更宏观的视角关注大众健康。善于捕捉“天地之气”的变化（节气、气候）对人体的影响。" +
		"语气要求：稳重、大气、温暖、笃定。核心思想：倡导“顺时养生”和“治未病”。" +
		"在解释中医理论时，要像央视《健康之路》专家一样，既保留中医的韵味（如气血、阴阳），又能用现代医学或生活常识进行“双语翻译”，让读者觉得科学可信。",
	StyleAuthority: "身份设定：拥有百万粉丝的硬核科普主笔，兼具临床医学背景与资深媒体人的敏锐度。写作基调：【专业但不晦涩，亲切但不随意】。" +
		"你需要做的是“降维打击”——用通俗易懂的类比解释复杂的医学原理（例如把血管比作水管，把免疫系统比作军队），而不是堆砌专业术语。" +
		"文章逻辑必须严谨（基于EBM循证医学），但文字要有温度和节奏感。拒绝冷冰冰的论文腔，也拒绝毫无营养的大白话。" +
		"每当抛出一个生僻概念，必须紧跟一个生活化的解释。对于伪科学要一针见血地指出谬误，但语气要客观平和，不要居高临下。" +
		"结构要求：现象/痛点引入 -> 科学原理拆解（通俗版） -> 权威数据/文献背书（简述核心发现） -> 实操性极强的避坑指南。",
	StyleEmotional:  "你是一位深夜电台主播般的推文编辑。笔触要细腻、柔软，像是在读者耳边低语，多描写生活碎片的温度，直击心灵痛点。",
	StyleTutorial:   "你是一位极其严谨的健康教练。文章必须结构严密，不讲废话，步骤必须具体到‘克’或‘分钟’，让读者看完就能立刻上手。",
	StyleLifestyle:  "你是一位爱分享、走在时尚前沿的生活博主。语气要活泼、高频使用表情符号、充满‘必冲’、‘绝绝子’等情绪价值词汇。",
	StyleHumor:      "你是一位人间清醒的脱口秀演员。用解构和犀利的毒舌拆解生活伪常识，在欢笑中输出干货，要有强烈的个人风格。",
	StyleBusiness:   "定位：健康领域的深度观察家。用冷峻、客观的视角剖析现象背后的逻辑，数据详实，适合理性中产阅读。",
	StyleMotivation: "定位：充满正能量的灵魂导师。文字要有力量感和节奏感，强调改变的必要性，金句要能让读者直接发朋友圈。",
}

// Styles returns the persona keys in display order.
func Styles() []string {
	return append([]string(nil), styleOrder...)
}

// IsKnownStyle reports whether style is a persona key.
func IsKnownStyle(style string) bool {
	_, ok := personas[style]
	return ok
}

// Persona returns the description for style.
func Persona(style string) (string, bool) {
	desc, ok := personas[style]
	return desc, ok
}

// articleTemplate takes the persona description, the topic and the word count.
const articleTemplate = `【你的绝对核心身份】：你是一名为微信公众号撰写深度健康养生科普推文的**顶尖主编**，参考**《人民日报健康客户端》**或**《生命时报》**的行文风格。
【你本次使用的特定风格模版与人设】：%[1]s

【全局语言风格调优】：
1. **去术语化**：减少晦涩术语，用生活化类比解释。
2. **语感分寸**：专业但亲切，介于教科书和市井口语之间。
3. **对话与引用**：双引号内容（对话/引用）必须使用**正常、朴实、自然的交谈语言**，严禁网络烂梗。

【核心任务】：针对主题“%[2]s”创作一篇深度原创长文。

【行文逻辑与结构 (CRITICAL - 仿人民日报健康客户端风格)】：
1. **拒绝僵化模版**：严禁使用“第一点、第二点”或“Part 1、Part 2”这种刻板的八股文结构。
2. **宏观开篇（重中之重）**：
   - **严禁**开篇直接讲“昨天诊室来个病人”这种具体的个案故事。
   - **必须**从宏观视角切入。
   - 语气要大气、有时效性。
3. **专家视角展开**：
   - 引入话题后，自然过渡到专家视角（“从中医角度来看...”）。
   - 结合《内经》或《伤寒》经典理论（需翻译成人话），深度剖析问题的根源。
   - 给出实实在在的建议（食疗、穴位、起居），强调“治未病”。

【视觉指令 (CRITICAL)】：
1. **封面图指令 (COVER)**：
   请在文章的最开头（第一行），生成一个**封面图描述**，格式：((COVER_IMG: ...))。
2. **配图埋点指令 (BODY)**：
   必须在文章正文中自然插入至少 4 个配图埋点，格式为 ((IMG: ...))。
3. **安全与防风控规则（适用于封面和配图）**：
   - 只描述纯粹的视觉画面（物体、静止场景、自然环境）。
   - 严禁出现敏感词：“汗水/sweat”、“身体特写/body close-up”、“剧烈运动”、“疼痛”、“皮肤/skin”、“肌肉”、“裸露”。
   - 替换为：“客厅”、“瑜伽馆”、“阳光”、“微笑”、“晨练”、“茶室”等安全词汇。

【内容要素】：
1. **字数**：%[3]d 字左右。
2. **组件使用**：
   - 需要对比时，自然地插入 Markdown 表格。
   - 关键结论处，自然使用【核心提示：...】格式强调。

直接输出正文，不要输出思考过程。`

// ArticlePrompt builds the text-model prompt for topic written in style.
// Unknown styles fall back to a generic persona. A non-positive wordCount
// uses DefaultWordCount.
func ArticlePrompt(topic, style string, wordCount int) string {
	desc, ok := personas[style]
	if !ok {
		desc = genericStyleDesc
	}
	if wordCount <= 0 {
		wordCount = DefaultWordCount
	}
	return fmt.Sprintf(articleTemplate, desc, strings.TrimSpace(topic), wordCount)
}

// Image prompt fragments.
const (
	compositionNote = "A single full-frame photograph, one continuous image, no borders, no split screen."
	culturalNote    = "Authentic Chinese cultural setting, realistic East Asian features if humans are present."
	negativeTerms   = "bad anatomy, deformed, ugly, blurry, low quality, watermark, text, signature, logo, words, letters, alphabet, ui, interface, split screen, collage, grid, comparison, multiple views, borders, frames, speech bubbles, infographics."
	coverShot       = "Wide cinematic shot, symmetrical composition, high impact visual."
	bodyShot        = "Medium shot, depth of field."
	defaultKeywords = "Cinematic photography, authentic texture, natural lighting, Fujifilm color grading, masterpiece."
)

// styleKeywords maps personas with a distinct photographic look.
var styleKeywords = map[string]string{
	StyleAuthority: "National Geographic style, professional documentary photography, sharp focus, 8k resolution, highly detailed, cinematic lighting.",
	StyleLifestyle: "Lifestyle photography, bright, airy, high saturation, Instagram aesthetic, cozy atmosphere, soft lighting.",
	StyleTutorial:  "Clean product photography, minimalist, balanced lighting, professional studio shot, neutral background.",
}

// ImagePrompt expands a scene description into an image-model prompt.
func ImagePrompt(desc, style string, cover bool) string {
	keywords, ok := styleKeywords[style]
	if !ok {
		keywords = defaultKeywords
	}
	shot := bodyShot
	if cover {
		shot = coverShot
	}
	scene := strings.TrimRight(strings.TrimSpace(desc), ".。")
	return fmt.Sprintf("%s %s. %s %s %s --no %s", compositionNote, scene, shot, keywords, culturalNote, negativeTerms)
}

// AspectRatio returns the image aspect ratio for a cover or body image.
func AspectRatio(cover bool) string {
	if cover {
		return CoverAspectRatio
	}
	return BodyAspectRatio
}

// CoverFallback is the cover description used when the article has none.
func CoverFallback(topic string) string {
	return "Cinematic photography related to " + strings.TrimSpace(topic) +
		", contemporary Chinese lifestyle, natural lighting."
}
