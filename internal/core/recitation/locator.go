// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recitation

import (
	"fmt"
	"strings"
)

// Locator builds the recording address of one verse.
//
//	Locator("https://everyayah.com/data", Reciter{Path: "Alafasy_128kbps"}, 2, 255)
//	// https://everyayah.com/data/Alafasy_128kbps/002255.mp3
func Locator(baseURL string, reciter Reciter, chapter, verse int) string {
	return fmt.Sprintf("%s/%s/%03d%03d.mp3",
		strings.TrimRight(baseURL, "/"),
		strings.Trim(reciter.Path, "/"),
		chapter,
		verse,
	)
}
