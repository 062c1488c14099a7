package notifier

import (
	"fmt"
	"html"
)

// alertHTML renders the fixed high-risk alert template. Subject and excerpt
// come from user-submitted content and are escaped before embedding.
func alertHTML(riskScore int, subject, excerpt string) string {
	if subject == "" {
		subject = "N/A"
	}
	if excerpt == "" {
		excerpt = "No content preview available"
	}

	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; border: 1px solid #ddd; border-radius: 5px; padding: 20px;">
      <div style="text-align: center; margin-bottom: 20px;">
        <h1 style="color: #e63946; margin: 0;">&#9888; High Risk Alert</h1>
        <p style="color: #666; font-size: 14px;">AI Shield Alert - Phishing Detection</p>
      </div>

      <div style="margin-bottom: 20px; padding: 15px; background-color: #fff4f4; border-left: 4px solid #e63946; border-radius: 3px;">
        <p style="margin: 0; font-size: 16px;">We've detected a <strong>high risk phishing attempt</strong> in content you submitted.</p>
        <p style="margin: 10px 0 0; font-size: 14px;">Risk Score: <span style="color: #e63946; font-weight: bold;">%d%%</span></p>
      </div>

      <div style="margin-bottom: 20px;">
        <h2 style="font-size: 18px; margin-top: 0;">Phishing Content Details</h2>
        <p style="font-size: 14px; color: #666;">Subject: %s</p>
        <div style="background-color: #f5f5f5; padding: 10px; border-radius: 3px; font-family: monospace; font-size: 13px;">
          %s
        </div>
      </div>

      <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666;">
        <p>This is an automated security alert from AI Shield Alert.</p>
        <p>To manage your security settings, log in to your dashboard.</p>
        <p>If you need assistance, please contact our support team.</p>
      </div>
    </div>
  </body>
</html>`, riskScore, html.EscapeString(subject), html.EscapeString(excerpt))
}
