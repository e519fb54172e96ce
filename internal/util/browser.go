package util

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// launcher 打开地址的一条系统命令，地址追加在 args 之后
type launcher struct {
	name string
	args []string
}

// launchers 各平台按顺序尝试的命令
var launchers = map[string][]launcher{
	"windows": {
		{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
		{name: "explorer"},
	},
	"darwin": {
		{name: "open"},
	},
	"linux": {
		{name: "xdg-open"},
		{name: "sensible-browser"},
		{name: "firefox"},
		{name: "google-chrome"},
		{name: "chromium-browser"},
	},
}

// startCommand 启动命令但不等待退出
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenURL 用本机浏览器打开地址，依次尝试当前平台的命令
func OpenURL(url string) error {
	return openWith(launchersFor(runtime.GOOS), url)
}

func launchersFor(goos string) []launcher {
	if l, ok := launchers[goos]; ok {
		return l
	}
	return launchers["linux"]
}

func openWith(candidates []launcher, url string) error {
	var tried []string
	for _, l := range candidates {
		args := append(append([]string{}, l.args...), url)
		if err := startCommand(l.name, args...); err == nil {
			return nil
		}
		tried = append(tried, l.name)
	}
	return errors.Errorf("no browser could open %s (tried %s)", url, strings.Join(tried, ", "))
}
