package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/asifrahman99/course_bazaar/configs"
	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CheckAndGenerateCertificate issues a completion certificate once an
// enrollment reaches 100% progress. At most one certificate exists per
// (user, course); repeat calls are no-ops.
func CheckAndGenerateCertificate(enrollment models.Enrollment) {
	if enrollment.Progress < 100 {
		return
	}

	var existingCert models.Certificate
	if err := database.DB.Where("user_id = ? AND course_id = ?", enrollment.UserID, enrollment.CourseID).First(&existingCert).Error; err == nil {
		return
	}

	var user models.User
	if err := database.DB.Where("id = ?", enrollment.UserID).First(&user).Error; err != nil {
		log.Printf("🔥 Certificate: user %s not found: %v", enrollment.UserID, err)
		return
	}
	var course models.Course
	if err := database.DB.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		log.Printf("🔥 Certificate: course %s not found: %v", enrollment.CourseID, err)
		return
	}

	htmlData, err := generateCertificateHTML(user.FullName, course.Title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, enrollment.UserID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		UserID:         enrollment.UserID,
		CourseID:       enrollment.CourseID,
		CertificateURL: uploadURL,
		IssuedAt:       time.Now(),
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for user %s: %v", enrollment.UserID, err)
		return
	}

	log.Printf("✅ Generated and uploaded certificate for user %s, course '%s'.", enrollment.UserID, course.Title)

	go notifications.SendEmail(
		user.FullName,
		user.Email,
		"Your Course Certificate is Ready!",
		fmt.Sprintf("<h1>Congratulations!</h1><p>You completed <b>%s</b>. Your certificate is ready: <a href='%s'>Download Certificate</a></p>", course.Title, uploadURL),
	)
}

func generateCertificateHTML(studentName, courseTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", userID, uuid.New().String()),
		Folder:       "course_bazaar_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
