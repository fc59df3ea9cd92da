package mail

import "fmt"

// RegisterMessage is the mail sent after registration, carrying the code the
// user must submit to /verify.
func RegisterMessage(name, code string) Message {
	return Message{
		Subject: fmt.Sprintf("Language Assistant verification code: %s", code),
		HTML: fmt.Sprintf(`<html>
	<body>
		<h3 style="color: darkblue;">Welcome, %s!</h3>
		<p>Thank you for registering to <strong>Language Assistant!</strong></p>
		<p>Here is your verification code:</p>
		<h1><strong>%s</strong></h1>
		<p>Best regards,<br><strong>The Language Assistant Team</strong></p>
	</body>
</html>`, name, code),
	}
}

// ResetPasswordMessage carries the code issued by /forgotpass.
func ResetPasswordMessage(name, code string) Message {
	return Message{
		Subject: fmt.Sprintf("Language Assistant verification code: %s", code),
		HTML: fmt.Sprintf(`<html>
	<body>
		<h3 style="color: darkblue;">Hello, %s!</h3>
		<p>We received a request to reset your password for <strong>Language Assistant.</strong></p>
		<p>Here is your verification code:</p>
		<h1><strong>%s</strong></h1>
		<p>If you did not request a password reset, please ignore this email.</p>
		<p>Stay safe,<br><strong>The Language Assistant Team</strong></p>
	</body>
</html>`, name, code),
	}
}
