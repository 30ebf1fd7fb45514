package version

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/NebulaX/nebulax/nebulax/common"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

const unknownVersion = "<unknown>"

var (
	// Set with -ldflags "-X github.com/NebulaX/nebulax/nebulax/common/version.gitTag=..."
	gitTag string

	versionInfoOnce  sync.Once
	versionInfoCache versionInfo
)

func GetVersionInfo() versionInfo {
	versionInfoOnce.Do(func() {
		versionInfoCache = versionInfo{
			Version:   unknownVersion,
			GitCommit: unknownVersion,
			BuildDate: unknownVersion,
		}
		if gitTag != "" {
			versionInfoCache.Version = gitTag
		}

		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if gitTag == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			versionInfoCache.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				versionInfoCache.GitCommit = s.Value
			case "vcs.time":
				if len(s.Value) >= 10 {
					versionInfoCache.BuildDate = s.Value[:10]
				}
			}
		}
	})
	return versionInfoCache
}

func BuildVersionString(appTitle string) string {
	info := GetVersionInfo()
	return FormatVersion(versionTmpl, map[string]any{
		"Title":   appTitle,
		"Version": info.Version,
		"OS":      runtime.GOOS,
		"Arch":    runtime.GOARCH,
		"Commit":  info.GitCommit,
		"Date":    info.BuildDate,
	})
}

func FormatVersion(template string, templateArgs map[string]any) string {
	versionMsg, err := common.ParseTemplate(template, templateArgs)
	if err != nil {
		panic(err)
	}

	return versionMsg
}

var versionTmpl = `{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch:	{{ .OS }}/{{ .Arch }}
 Git commit:	{{ .Commit }}
 Build date:	{{ .Date }}`
