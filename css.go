package mdpress

// defaultFontFamily is used for generated chrome such as the footer line.
const defaultFontFamily = "sans-serif"

// printCSS is prepended to every stylesheet so paged output avoids widowed
// headings and split code blocks regardless of the selected style.
const printCSS = `@media print {
  h1, h2, h3, h4, h5, h6 {
    break-after: avoid;
    break-inside: avoid;
  }
  pre, blockquote, table, figure {
    break-inside: avoid;
  }
  p {
    orphans: 3;
    widows: 3;
  }
}
`
