package classify

import "strings"

// flagshipPackages lists the callers entitled to the current flagship
// identity. Membership is exact; subpackages do not inherit it.
var flagshipPackages = map[string]struct{}{

	"com.amazon.avod.thirdpartyclient":                {},
	"com.android.chrome":                              {},
	"com.breel.wallpapers20":                          {},
	"com.disney.disneyplus":                           {},
	"com.google.android.aicore":                       {},
	"com.google.android.apps.accessibility.magnifier": {},
	"com.google.android.apps.aiwallpapers":            {},
	"com.google.android.apps.bard":                    {},
	"com.google.android.apps.customization.pixel":     {},
	"com.google.android.apps.emojiwallpaper":          {},
	"com.google.android.apps.nexuslauncher":           {},
	"com.google.android.apps.pixel.agent":             {},
	"com.google.android.apps.pixel.creativeassistant": {},
	"com.google.android.apps.pixel.support":           {},
	"com.google.android.apps.privacy.wildlife":        {},
	"com.google.android.apps.subscriptions.red":       {},
	"com.google.android.apps.wallpaper":               {},
	"com.google.android.apps.wallpaper.pixel":         {},
	"com.google.android.apps.weather":                 {},
	"com.google.android.gms":                          {},
	"com.google.android.googlequicksearchbox":         {},
	"com.google.android.soundpicker":                  {},
	"com.google.android.wallpaper.effects":            {},
	"com.google.pixel.livewallpaper":                  {},
	"com.microsoft.android.smsorganizer":              {},
	"com.nhs.online.nhsonline":                        {},
	"com.nothing.smartcenter":                         {},
	"com.realme.link":                                 {},
	"in.startv.hotstar":                               {},
	"jp.id_credit_sp2.android":                        {},
}

// musicPackages lists regional music players whose rebranding sits behind
// the music disguise flag.
var musicPackages = map[string]struct{}{

	"cmccwm.mobilemusic":     {},
	"cn.kuwo.player":         {},
	"com.hihonor.cloudmusic": {},
	"com.kugou.android":      {},
	"com.kugou.android.lite": {},
	"com.meizu.media.music":  {},
	"com.netease.cloudmusic": {},
	"com.tencent.qqmusic":    {},
}

// excludedCameraPackages names camera builds that must always observe the
// real hardware identity. GoogleCamera variants are caught by substring.
var excludedCameraPackages = map[string]struct{}{

	"com.google.android.MTCL83":          {},
	"com.google.android.UltraCVM":        {},
	"com.google.android.apps.cameralite": {},
}

// legacyProcessKeywords mark GMS worker processes that tolerate the older
// flagship identity. Matched case-insensitively as substrings.
var legacyProcessKeywords = []string{
	"gapps",
	"gservice",
	"learning",
	"persistent",
	"search",
	"update",
}

func isFlagshipPackage(pkg string) bool {
	_, ok := flagshipPackages[pkg]
	return ok
}

func isMusicPackage(pkg string) bool {
	_, ok := musicPackages[pkg]
	return ok
}

// IsExcludedCamera reports whether the package is a camera app that must
// never receive a spoofed identity.
func IsExcludedCamera(pkg string) bool {
	if strings.Contains(pkg, "GoogleCamera") {
		return true
	}
	_, ok := excludedCameraPackages[pkg]
	return ok
}

func hasLegacyProcessKeyword(process string) bool {
	p := strings.ToLower(process)
	for _, kw := range legacyProcessKeywords {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}
