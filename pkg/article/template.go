package article

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/wppick/wppick/pkg/search"
	"github.com/wppick/wppick/pkg/wporg"
)

// TemplateGenerator builds a deterministic Markdown draft from the plugin
// facts. It is the default when no language model is configured.
type TemplateGenerator struct{}

type templateData struct {
	Plugin     wporg.Plugin
	PageURL    string
	Topic      string
	References []search.Reference
}

var draftTemplate = template.Must(template.New("draft").Parse(`## {{ .Plugin.Name }}とは

{{ .Plugin.Name }} は WordPress の公式プラグインディレクトリで公開されているプラグインです。{{ if .Plugin.ShortDescription }}{{ .Plugin.ShortDescription }}{{ end }}

## 基本情報

- 有効インストール数: {{ .Plugin.ActiveInstalls }} 以上
- ユーザー評価: {{ .Plugin.Rating }} / 100
- 最終更新: {{ .Plugin.LastUpdated }}
{{- if .Plugin.Tested }}
- 動作確認済み WordPress バージョン: {{ .Plugin.Tested }}
{{- end }}

## インストール方法

WordPress 管理画面の「プラグイン」→「新規追加」から「{{ .Plugin.Name }}」を検索し、「今すぐインストール」をクリックして有効化します。公式ディレクトリで配布されているため、追加の費用はかかりません。

設定項目はプラグインによって異なりますが、まずは初期設定のまま動作を確認し、必要に応じて公式ドキュメントを参照しながら調整するのがおすすめです。

## 参考リンク

- [公式プラグインページ]({{ .PageURL }})
{{- range .References }}
- [{{ .Title }}]({{ .URL }})
{{- end }}

## まとめ

{{ .Plugin.Name }} は定期的にメンテナンスされており、導入のハードルも低いプラグインです。まずはテスト環境で動作を確認したうえで、本番サイトへの導入を検討してみてください。
`))

// Generate renders the draft template with the plugin facts.
func (TemplateGenerator) Generate(_ context.Context, req Request) (Draft, error) {
	data := templateData{
		Plugin:     req.Plugin,
		PageURL:    req.Plugin.PageURL(),
		Topic:      req.Topic,
		References: req.References,
	}

	buf := &bytes.Buffer{}
	if err := draftTemplate.Execute(buf, data); err != nil {
		return Draft{}, fmt.Errorf("failed to render draft template: %w", err)
	}

	return Draft{
		Title:   req.Plugin.Name + "の使い方と導入メリットを解説",
		Content: buf.String(),
		Tags:    tagsOf(req.Plugin),
	}, nil
}
