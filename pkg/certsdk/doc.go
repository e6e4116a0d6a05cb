/*
Package certsdk is a Go client for the CertiChain certificate service.

Public operations live on Client:

	client := certsdk.NewClient("https://certs.example.com")
	res, err := client.VerifyShare(ctx, token)
	if certsdk.IsCode(err, certsdk.ErrorCodeExpired) {
		// the share link has lapsed
	}

Wallet-authenticated operations live on Session. SignIn requests a
challenge, signs its message with the wallet key and exchanges it for a
session token:

	session, err := client.SignIn(ctx, wallet, certsdk.Ed25519Signer(key))
	cert, err := session.IssueCertificate(ctx, certsdk.IssueCertificateRequest{...})

Sessions do not refresh. Once the token lapses every call returns
ErrSessionExpired.
*/
package certsdk
