package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"genset/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务，用于发送导入报告
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// NotifyImport 把导入结果发给配置的收件人；未启用或无收件人时不发送
func (s *EmailService) NotifyImport(filename string, summary ImportSummary) error {
	if !s.cfg.Enabled || len(s.cfg.Recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[Riwayat Genset] Laporan impor %s", filename)
	body := s.generateImportReportBody(filename, summary, time.Now())

	return s.sendEmail(s.cfg.Recipients, subject, body)
}

// generateImportReportBody 生成导入报告邮件内容
func (s *EmailService) generateImportReportBody(filename string, summary ImportSummary, at time.Time) string {
	var problems strings.Builder
	for _, line := range summary.SkippedLines {
		fmt.Fprintf(&problems, "<tr><td>%d</td><td>Dilewati: kolom wajib kosong</td></tr>", line)
	}
	for _, rowErr := range summary.Errors {
		fmt.Fprintf(&problems, "<tr><td>%d</td><td>%s</td></tr>", rowErr.Line, html.EscapeString(rowErr.Reason))
	}
	problemTable := ""
	if problems.Len() > 0 {
		problemTable = `<table class="rows"><tr><th>Baris</th><th>Keterangan</th></tr>` + problems.String() + `</table>`
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #f59e0b, #d97706); color: white; padding: 24px; text-align: center; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { padding: 30px; color: #333; line-height: 1.6; }
        .stats td { padding: 4px 12px 4px 0; }
        .rows { border-collapse: collapse; margin-top: 16px; width: 100%%; }
        .rows th, .rows td { border: 1px solid #ddd; padding: 6px; font-size: 13px; text-align: left; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>⚡ Riwayat Genset</h1>
        </div>
        <div class="content">
            <p>Impor file <strong>%s</strong> selesai pada %s.</p>
            <table class="stats">
                <tr><td>Total baris</td><td>%d</td></tr>
                <tr><td>Berhasil</td><td>%d</td></tr>
                <tr><td>Dilewati</td><td>%d</td></tr>
                <tr><td>Gagal</td><td>%d</td></tr>
                <tr><td>Genset baru</td><td>%d</td></tr>
            </table>
            %s
        </div>
        <div class="footer">
            <p>Email ini dikirim otomatis, mohon tidak dibalas</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(filename), at.Format("2006-01-02 15:04"),
		summary.TotalRows, summary.Imported, summary.Skipped, summary.Failed, summary.GensetsCreated,
		problemTable)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
