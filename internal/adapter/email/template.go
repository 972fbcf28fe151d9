package email

import (
	"fmt"
	"html/template"
	"strings"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html lang="en">
<head><meta charset="UTF-8"><title>Order Confirmation - Triumph Lights</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff;">
    <div style="background-color: #007BFF; color: #ffffff; padding: 20px; text-align: center;">
      <h1>Thank You for Your Order!</h1>
    </div>
    <div style="padding: 20px;">
      <p>Hi {{.Name}},</p>
      <p>Thank you for shopping with Triumph Lights. We have received your order and it is being processed.</p>
      <h2>Order Summary</h2>
      <table style="width: 100%; border-collapse: collapse;" border="1">
        <thead>
          <tr><th>Product</th><th>Quantity</th><th>Price</th><th>Subtotal</th></tr>
        </thead>
        <tbody>
          {{range .Items}}<tr><td>{{.ProductID}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.SubTotal}}</td></tr>
          {{end}}
        </tbody>
      </table>
      <p><strong>Subtotal:</strong> Rs. {{.SubTotal}}</p>
      <p><strong>Tax:</strong> Rs. {{.Tax}}</p>
      <p><strong>Shipping Charges:</strong> Rs. {{.Shipping}}</p>
      <p><strong>Total Amount:</strong> Rs. {{.Total}}</p>
      <p>We will notify you once your order is on its way. If you have any questions, feel free to contact us at team@triumphlights.com.</p>
    </div>
    <div style="background-color: #f1f1f1; color: #666666; padding: 10px; text-align: center;">
      <p>&copy; Triumph Lights. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

type confirmationItem struct {
	ProductID string
	Quantity  int
	UnitPrice string
	SubTotal  string
}

type confirmationData struct {
	Name     string
	Items    []confirmationItem
	SubTotal string
	Tax      string
	Shipping string
	Total    string
}

func confirmationVars(fullName string, o *domain.Order) confirmationData {
	data := confirmationData{
		Name:     fullName,
		SubTotal: o.SubTotal.StringFixed(2),
		Tax:      o.TaxAmount.StringFixed(2),
		Shipping: o.ShippingCharges.StringFixed(2),
		Total:    o.TotalAmount.StringFixed(2),
	}
	for _, it := range o.Items {
		data.Items = append(data.Items, confirmationItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			SubTotal:  it.SubTotal.StringFixed(2),
		})
	}
	return data
}

func confirmationHTML(fullName string, o *domain.Order) string {
	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, confirmationVars(fullName, o)); err != nil {
		return "Thank You for Your Order"
	}
	return sb.String()
}

func confirmationText(fullName string, o *domain.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\nThank you for your order.\n\n", fullName)
	for _, it := range o.Items {
		fmt.Fprintf(&sb, "%s x%d @ %s = %s\n", it.ProductID, it.Quantity, it.UnitPrice.StringFixed(2), it.SubTotal.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nSubtotal: Rs. %s\nTax: Rs. %s\nShipping: Rs. %s\nTotal: Rs. %s\n",
		o.SubTotal.StringFixed(2), o.TaxAmount.StringFixed(2), o.ShippingCharges.StringFixed(2), o.TotalAmount.StringFixed(2))
	return sb.String()
}
