package email

import (
	"fmt"
	"time"
)

const otpSubject = "Your OTP Code"
const resetSubject = "Reset your password"

// OTPMessage builds the verification mail sent during signup and resend.
func OTPMessage(fullname string, code string, expiryMinutes int) (string, string) {
	body := fmt.Sprintf(`
<div style="font-family:'Segoe UI',Arial,sans-serif;max-width:480px;margin:40px auto;border:1px solid #eee;border-radius:14px;overflow:hidden">
  <div style="background:linear-gradient(90deg,#0047AB 0,#5B86E5 100%%);color:white;padding:28px 0;text-align:center">
    <h1 style="margin:0;font-size:2rem">Welcome to EMSATS!</h1>
  </div>
  <div style="background:#fff;padding:32px 24px">
    <h2 style="margin-top:0;color:#0047AB">Verify your email address</h2>
    <p>Dear <b>%s</b>,</p>
    <p>Thank you for signing up. To complete your registration, please use the OTP code below:</p>
    <div style="margin:32px 0;text-align:center">
      <span style="display:inline-block;background:#0047AB;color:white;font-size:36px;letter-spacing:12px;padding:20px 32px;border-radius:12px;font-weight:bold">%s</span>
    </div>
    <p style="color:#888">This OTP will expire in <b>%d minutes</b>.</p>
    <p style="margin:32px 0 0 0">If you didn't create an account, just ignore this email.</p>
  </div>
  <div style="font-size:.95em;color:#aaa;background:#f4f6fa;text-align:center;padding:16px">
    &copy; %d EMSATS. All rights reserved.
  </div>
</div>`, fullname, code, expiryMinutes, time.Now().Year())
	return otpSubject, body
}

// ResetMessage builds the password-reset mail carrying the signed token.
func ResetMessage(token string, expiryMinutes int) (string, string) {
	body := fmt.Sprintf(`
<div style="font-family:'Segoe UI',Arial,sans-serif;max-width:480px;margin:40px auto;border:1px solid #eee;border-radius:14px;overflow:hidden">
  <div style="background:linear-gradient(90deg,#0047AB 0,#5B86E5 100%%);color:white;padding:28px 0;text-align:center">
    <h1 style="margin:0;font-size:1.6rem">EMSATS Password Reset</h1>
  </div>
  <div style="background:#fff;padding:32px 24px">
    <p>We received a request to reset your password. Use the token below with the password update form:</p>
    <div style="margin:24px 0;text-align:center">
      <code style="display:inline-block;background:#f4f6fa;padding:12px 16px;border-radius:8px;word-break:break-all">%s</code>
    </div>
    <p style="color:#888">This token expires in <b>%d minutes</b>.</p>
    <p style="margin:32px 0 0 0">If you didn't request a reset, you can safely ignore this email.</p>
  </div>
  <div style="font-size:.95em;color:#aaa;background:#f4f6fa;text-align:center;padding:16px">
    &copy; %d EMSATS. All rights reserved.
  </div>
</div>`, token, expiryMinutes, time.Now().Year())
	return resetSubject, body
}
