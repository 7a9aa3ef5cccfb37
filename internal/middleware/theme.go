package middleware

import (
	"bytes"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/types"
)

var htmlTagPattern = regexp.MustCompile(`<html[^>]*>`)
var themeAttrPattern = regexp.MustCompile(`data-theme="[^"]*"`)

type themeBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *themeBodyWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *themeBodyWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// ThemeMiddleware resolves the color theme for the request: a valid
// cookie wins, otherwise the client preference hint decides. A missing
// or invalid cookie is replaced with the resolved value. HTML responses
// get their <html> tag rewritten to carry the resolved theme.
func ThemeMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookieTheme, _ := ctx.Cookie(types.ThemeCookieName)
		prefersDark := ctx.GetHeader("Sec-CH-Prefers-Color-Scheme") == "dark"

		theme := cookieTheme

		if !types.IsValidTheme(theme) {
			if prefersDark {
				theme = "dark"
			} else {
				theme = "light"
			}
		}

		ctx.Set(types.ContextThemeKey, theme)

		if !types.IsValidTheme(cookieTheme) {
			SetThemeCookie(ctx, theme)
		}

		writer := &themeBodyWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = writer

		ctx.Next()

		body := writer.body.Bytes()

		contentType := writer.Header().Get("Content-Type")

		if strings.HasPrefix(contentType, "text/html") {
			body = rewriteThemeAttr(body, theme)
			writer.Header().Del("Content-Length")
		}

		if len(body) > 0 {
			writer.ResponseWriter.Write(body)
		}
	}
}

// SetThemeCookie persists the theme for 30 days, strict same-site.
func SetThemeCookie(ctx *gin.Context, theme string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.ThemeCookieName,
		Value:    theme,
		Path:     "/",
		MaxAge:   types.ThemeCookieMaxAge,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// rewriteThemeAttr embeds the resolved theme into the root <html> tag,
// replacing an existing data-theme attribute or inserting one.
func rewriteThemeAttr(body []byte, theme string) []byte {
	return htmlTagPattern.ReplaceAllFunc(body, func(tag []byte) []byte {
		attr := []byte(`data-theme="` + theme + `"`)

		if themeAttrPattern.Match(tag) {
			return themeAttrPattern.ReplaceAll(tag, attr)
		}

		closing := bytes.LastIndexByte(tag, '>')
		rewritten := make([]byte, 0, len(tag)+len(attr)+1)
		rewritten = append(rewritten, tag[:closing]...)
		rewritten = append(rewritten, ' ')
		rewritten = append(rewritten, attr...)
		rewritten = append(rewritten, '>')

		return rewritten
	})
}
