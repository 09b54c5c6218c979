package util

import (
	"fmt"
	"net/url"
	"strings"
)

var themeColors = map[string]string{
	"Safety":      "red",
	"Leadership":  "blue",
	"Compliance":  "green",
	"Soft Skills": "purple",
	"Technical":   "orange",
}

// PlaceholderImage 根据标题和主题生成占位图地址
func PlaceholderImage(title, theme string, width, height int) string {
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 150
	}
	color, ok := themeColors[theme]
	if !ok {
		color = "gray"
	}
	runes := []rune(title)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return fmt.Sprintf("https://placehold.co/%dx%d/%s/white?text=%s", width, height, color, url.QueryEscape(string(runes)))
}

// CourseImageURL 已有可用地址时直接返回，否则生成占位图
func CourseImageURL(image, title, theme string) string {
	if strings.HasPrefix(image, "http") || strings.HasPrefix(image, "/") || strings.HasPrefix(image, "assets/") {
		return image
	}
	return PlaceholderImage(title, theme, 400, 150)
}
