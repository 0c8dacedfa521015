package cmd

// statusLineFormat is the format string to use for status line printing. On
// Windows, content is limited to 79 characters because carriage return wipes
// don't work once the cursor has printed in the last column of the console.
const statusLineFormat = "\r%-79.79s"
