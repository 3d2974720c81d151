package favicon

import (
	"fmt"
	"path"
	"strings"
)

var linkTemplates = map[string]string{
	"favicon.ico":    `<link rel="icon" href="%s" sizes="48x48">`,
	"icon.png":       `<link rel="icon" href="%s" type="image/png" sizes="192x192">`,
	"apple-icon.png": `<link rel="apple-touch-icon" href="%s" sizes="180x180">`,
}

// Fingerprint 取 ETag 中的摘要前 8 位，用作 ?v= 缓存参数
func Fingerprint(tag string) string {
	tag = strings.TrimPrefix(tag, "W/")
	tag = strings.Trim(tag, `"`)
	if i := strings.LastIndexByte(tag, '-'); i >= 0 {
		tag = tag[i+1:]
	}
	if len(tag) > 8 {
		tag = tag[:8]
	}
	return tag
}

// LinkTags 每行一个 <link> 标签，href 以 baseURL 为前缀，默认 "/"
func LinkTags(written []Written, baseURL string) string {
	if baseURL == "" {
		baseURL = "/"
	}
	var sb strings.Builder
	for _, w := range written {
		tpl, ok := linkTemplates[w.Name]
		if !ok {
			continue
		}
		href := joinURL(baseURL, w.Name)
		if v := Fingerprint(w.ETag); v != "" {
			href += "?v=" + v
		}
		fmt.Fprintf(&sb, tpl, href)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func joinURL(base, name string) string {
	if strings.Contains(base, "://") {
		return strings.TrimSuffix(base, "/") + "/" + name
	}
	return path.Join("/", base, name)
}
