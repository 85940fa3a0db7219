package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// RenderMaintenanceAlertEmail generates branded HTML for the daily
// maintenance digest sent to a vehicle's driver. Service names and
// justifications are HTML-escaped.
func RenderMaintenanceAlertEmail(plate string, due []models.ServiceAlert) string {
	safePlate := html.EscapeString(plate)

	var items strings.Builder
	for _, alert := range due {
		items.WriteString(fmt.Sprintf("<li><strong>%s</strong> &mdash; %s</li>",
			html.EscapeString(alert.ServiceName),
			html.EscapeString(alert.Justification)))
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Maintenance due for %s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f5f7; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #1e3a8a 0%%, #2563eb 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .content ul { padding-left: 20px; }
    .content li { margin-bottom: 8px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Maintenance due for %s</h1>
    </div>
    <div class="content">
      <p>The following maintenance services are due for vehicle <strong>%s</strong>:</p>
      <ul>
        %s
      </ul>
      <p>Please schedule the services and record them once performed.</p>
    </div>
    <div class="footer">
      <p>Fleet maintenance digest &middot; sent automatically every morning</p>
    </div>
  </div>
</body>
</html>`, safePlate, safePlate, safePlate, items.String())
}
